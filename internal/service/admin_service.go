package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "divelog/internal/errors"
	"divelog/internal/model"
	"divelog/internal/repository"
)

// AdminService handles the admin-only user management operations. Every
// operation takes the caller's id and checks the role record itself, so a
// valid token alone is never enough.
type AdminService interface {
	ListUsers(ctx context.Context, callerID uuid.UUID) ([]repository.UserWithRole, error)
	SetBlocked(ctx context.Context, callerID, targetID uuid.UUID, blocked bool) (*model.User, error)
	SetAdmin(ctx context.Context, callerID, targetID uuid.UUID, admin bool) error
	DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) AdminService {
	return &adminService{userRepo: userRepo, roleRepo: roleRepo}
}

// ListUsers returns every user joined with their admin flag, newest first.
func (s *adminService) ListUsers(ctx context.Context, callerID uuid.UUID) ([]repository.UserWithRole, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.userRepo.ListWithRoles(ctx)
}

// SetBlocked toggles the blocked flag. Tokens already issued to the target
// stay structurally valid until expiry; only new logins and dive creation are
// rejected.
func (s *adminService) SetBlocked(ctx context.Context, callerID, targetID uuid.UUID, blocked bool) (*model.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.SetBlocked(ctx, targetID, blocked)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("set blocked: %w", err)
	}
	return user, nil
}

// SetAdmin toggles the target's admin flag. Self-demotion is allowed.
func (s *adminService) SetAdmin(ctx context.Context, callerID, targetID uuid.UUID, admin bool) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.roleRepo.SetAdmin(ctx, targetID, admin)
}

// DeleteUser removes a user and cascades to their dives. Admins cannot delete
// their own account this way.
func (s *adminService) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if callerID == targetID {
		return apperrors.ErrSelfDelete
	}
	return s.userRepo.DeleteCascade(ctx, targetID)
}

// requireAdmin distinguishes authorization from authentication: the caller is
// known, but a missing role row or a false flag is a 403, not a 401.
func (s *adminService) requireAdmin(ctx context.Context, callerID uuid.UUID) error {
	role, err := s.roleRepo.FindByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAdminRequired
		}
		return fmt.Errorf("load role: %w", err)
	}
	if !role.Admin {
		return apperrors.ErrAdminRequired
	}
	return nil
}
