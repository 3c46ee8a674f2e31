package model

import "github.com/google/uuid"

// Role carries the per-user admin flag, kept apart from the identity record.
type Role struct {
	UserID uuid.UUID `json:"user_id" gorm:"type:char(36);primaryKey"`
	Admin  bool      `json:"admin" gorm:"default:false"`
}
