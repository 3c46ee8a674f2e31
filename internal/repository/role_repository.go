package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"divelog/internal/model"
)

// RoleRepository defines role persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Role, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository builds a GORM-backed repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) error {
	return r.db.WithContext(ctx).Model(&model.Role{}).
		Where("user_id = ?", userID).
		Update("admin", admin).Error
}
