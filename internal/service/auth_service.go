package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"divelog/internal/auth"
	apperrors "divelog/internal/errors"
	"divelog/internal/model"
	"divelog/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and self-service account operations.
type AuthService interface {
	Register(ctx context.Context, pseudo, password, nom, prenom string, photoProfil *string) (user *model.User, token string, err error)
	Login(ctx context.Context, pseudo, password string) (user *model.User, admin bool, token string, err error)
	GetMe(ctx context.Context, userID uuid.UUID) (user *model.User, admin bool, err error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch repository.UserPatch) (*model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error
}

type authService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a hashed password plus a default role, and
// issues a token right away.
func (s *authService) Register(ctx context.Context, pseudo, password, nom, prenom string, photoProfil *string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByPseudo(ctx, pseudo)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrPseudoTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check pseudo existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Pseudo:       pseudo,
		PasswordHash: string(hashedPassword),
		Nom:          nom,
		Prenom:       prenom,
		PhotoProfil:  photoProfil,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrPseudoTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	if err := s.roleRepo.Create(ctx, &model.Role{UserID: user.ID, Admin: false}); err != nil {
		return nil, "", fmt.Errorf("create role: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID.String(), user.Pseudo)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown pseudo and wrong
// password collapse into the same error; a blocked account is rejected before
// the password is even checked.
func (s *authService) Login(ctx context.Context, pseudo, password string) (*model.User, bool, string, error) {
	user, err := s.userRepo.FindByPseudo(ctx, pseudo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, "", apperrors.ErrInvalidCredentials
		}
		return nil, false, "", fmt.Errorf("find user: %w", err)
	}

	if user.Blocked {
		return nil, false, "", apperrors.ErrAccountBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, false, "", apperrors.ErrInvalidCredentials
	}

	admin := s.adminFlag(ctx, user.ID)

	token, err := s.jwtService.GenerateToken(user.ID.String(), user.Pseudo)
	if err != nil {
		return nil, false, "", fmt.Errorf("generate token: %w", err)
	}
	return user, admin, token, nil
}

// GetMe loads the caller's profile and admin flag.
func (s *authService) GetMe(ctx context.Context, userID uuid.UUID) (*model.User, bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.ErrUserNotFound
		}
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	return user, s.adminFlag(ctx, userID), nil
}

// UpdateProfile applies a partial profile update.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch repository.UserPatch) (*model.User, error) {
	if len(patch.Assignments()) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	if patch.Pseudo != nil {
		taken, err := s.userRepo.PseudoTakenByOther(ctx, *patch.Pseudo, userID)
		if err != nil {
			return nil, fmt.Errorf("check pseudo: %w", err)
		}
		if taken {
			return nil, apperrors.ErrPseudoTaken
		}
	}

	user, err := s.userRepo.ApplyPatch(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrPseudoTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePasswordHash(ctx, userID, string(hashed))
}

// DeleteAccount removes the caller's account after a password confirmation,
// cascading to owned dives and their species links.
func (s *authService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return apperrors.ErrWrongPassword
	}
	return s.userRepo.DeleteCascade(ctx, userID)
}

// adminFlag mirrors the LEFT JOIN semantics: a missing role row means not admin.
func (s *authService) adminFlag(ctx context.Context, userID uuid.UUID) bool {
	role, err := s.roleRepo.FindByUserID(ctx, userID)
	if err != nil {
		return false
	}
	return role.Admin
}
