package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"divelog/internal/auth"
	"divelog/internal/model"
	"divelog/internal/repository"
	"divelog/internal/service"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	e.HTTPErrorHandler = HTTPErrorHandler
	return e
}

// authAs injects verified claims the way the JWT middleware would, so secured
// handlers can be exercised without minting real tokens.
func authAs(id uuid.UUID, pseudo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
				UserID: id.String(),
				Pseudo: pseudo,
			})
			c.Set("user", token)
			return next(c)
		}
	}
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, pseudo, password, nom, prenom string, photoProfil *string) (*model.User, string, error) {
	args := m.Called(ctx, pseudo, password, nom, prenom, photoProfil)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, pseudo, password string) (*model.User, bool, string, error) {
	args := m.Called(ctx, pseudo, password)
	if args.Get(0) == nil {
		return nil, false, "", args.Error(3)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) GetMe(ctx context.Context, userID uuid.UUID) (*model.User, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch repository.UserPatch) (*model.User, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

// MockDiveService is a mock implementation of service.DiveService.
type MockDiveService struct {
	mock.Mock
}

func (m *MockDiveService) Create(ctx context.Context, userID uuid.UUID, dive *model.Dive) (*model.Dive, error) {
	args := m.Called(ctx, userID, dive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dive), args.Error(1)
}

func (m *MockDiveService) List(ctx context.Context, userID uuid.UUID) ([]model.Dive, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Dive), args.Error(1)
}

func (m *MockDiveService) ListSpecies(ctx context.Context, userID uuid.UUID, diveID uint) ([]model.Species, error) {
	args := m.Called(ctx, userID, diveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Species), args.Error(1)
}

func (m *MockDiveService) AddSpecies(ctx context.Context, userID uuid.UUID, diveID uint, nom string, image *string) (*model.Species, error) {
	args := m.Called(ctx, userID, diveID, nom, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Species), args.Error(1)
}

// MockSpeciesService is a mock implementation of service.SpeciesService.
type MockSpeciesService struct {
	mock.Mock
}

func (m *MockSpeciesService) CatalogPage(ctx context.Context, page, limit int, search string) (*service.CatalogPage, error) {
	args := m.Called(ctx, page, limit, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CatalogPage), args.Error(1)
}

func (m *MockSpeciesService) LookupOrCreate(ctx context.Context, nom string, image *string) (*model.Species, bool, error) {
	args := m.Called(ctx, nom, image)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Species), args.Bool(1), args.Error(2)
}

// MockAdminService is a mock implementation of service.AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context, callerID uuid.UUID) ([]repository.UserWithRole, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserWithRole), args.Error(1)
}

func (m *MockAdminService) SetBlocked(ctx context.Context, callerID, targetID uuid.UUID, blocked bool) (*model.User, error) {
	args := m.Called(ctx, callerID, targetID, blocked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminService) SetAdmin(ctx context.Context, callerID, targetID uuid.UUID, admin bool) error {
	args := m.Called(ctx, callerID, targetID, admin)
	return args.Error(0)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error {
	args := m.Called(ctx, callerID, targetID)
	return args.Error(0)
}
