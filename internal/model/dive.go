package model

import (
	"time"

	"github.com/google/uuid"
)

// Dive is a logged diving session owned by one user.
type Dive struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Titre       string    `json:"titre" gorm:"size:255;not null"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Type        *string   `json:"type" gorm:"size:100"`
	Profondeur  *float64  `json:"profondeur"`
	Temps       *int      `json:"temps"`
	Lieu        *string   `json:"lieu" gorm:"size:255"`
	UserID      uuid.UUID `json:"id_utilisateur" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
}
