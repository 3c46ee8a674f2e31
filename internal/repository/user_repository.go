package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"divelog/internal/model"
)

// UserPatch is an explicit patch for profile updates: one optional field per
// updatable column. Only present fields become SET assignments.
type UserPatch struct {
	Pseudo      *string
	Nom         *string
	Prenom      *string
	PhotoProfil *string
	// PhotoProfil may be cleared explicitly.
	ClearPhotoProfil bool
}

// Assignments returns the column assignments for the present fields.
func (p UserPatch) Assignments() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Pseudo != nil {
		updates["pseudo"] = *p.Pseudo
	}
	if p.Nom != nil {
		updates["nom"] = *p.Nom
	}
	if p.Prenom != nil {
		updates["prenom"] = *p.Prenom
	}
	if p.PhotoProfil != nil {
		updates["photo_profil"] = *p.PhotoProfil
	} else if p.ClearPhotoProfil {
		updates["photo_profil"] = nil
	}
	return updates
}

// UserWithRole is a user row joined with its admin flag for admin listings.
type UserWithRole struct {
	model.User
	Admin bool `json:"admin"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByPseudo(ctx context.Context, pseudo string) (*model.User, error)
	PseudoTakenByOther(ctx context.Context, pseudo string, excludeID uuid.UUID) (bool, error)
	ApplyPatch(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*model.User, error)
	ListWithRoles(ctx context.Context) ([]UserWithRole, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPseudo(ctx context.Context, pseudo string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("pseudo = ?", pseudo).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) PseudoTakenByOther(ctx context.Context, pseudo string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("pseudo = ? AND id <> ?", pseudo, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) ApplyPatch(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	updates := patch.Assignments()
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.User{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *userRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("blocked", blocked)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) ListWithRoles(ctx context.Context) ([]UserWithRole, error) {
	var users []UserWithRole
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*, COALESCE(roles.admin, false) AS admin").
		Joins("LEFT JOIN roles ON roles.user_id = users.id").
		Order("users.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteCascade removes a user together with their role, dives and the
// species links of those dives, in one transaction.
func (r *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		diveIDs := tx.Model(&model.Dive{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("dive_id IN (?)", diveIDs).Delete(&model.DiveSpecies{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Dive{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Role{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.User{}).Error
	})
}
