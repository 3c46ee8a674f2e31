package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"divelog/internal/cache"
	apperrors "divelog/internal/errors"
	"divelog/internal/model"
	"divelog/internal/repository"
)

// DiveService handles the caller-scoped dive log.
type DiveService interface {
	Create(ctx context.Context, userID uuid.UUID, dive *model.Dive) (*model.Dive, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Dive, error)
	ListSpecies(ctx context.Context, userID uuid.UUID, diveID uint) ([]model.Species, error)
	AddSpecies(ctx context.Context, userID uuid.UUID, diveID uint, nom string, image *string) (*model.Species, error)
}

type diveService struct {
	userRepo    repository.UserRepository
	diveRepo    repository.DiveRepository
	speciesRepo repository.SpeciesRepository
	cache       *cache.Client
}

// NewDiveService creates a new dive service.
func NewDiveService(userRepo repository.UserRepository, diveRepo repository.DiveRepository, speciesRepo repository.SpeciesRepository, cache *cache.Client) DiveService {
	return &diveService{
		userRepo:    userRepo,
		diveRepo:    diveRepo,
		speciesRepo: speciesRepo,
		cache:       cache,
	}
}

// Create logs a dive for the caller. Blocked users may keep reading their log
// but cannot add to it.
func (s *diveService) Create(ctx context.Context, userID uuid.UUID, dive *model.Dive) (*model.Dive, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Blocked {
		return nil, apperrors.ErrAccountBlocked
	}

	dive.UserID = userID
	if err := s.diveRepo.Create(ctx, dive); err != nil {
		return nil, fmt.Errorf("create dive: %w", err)
	}
	return dive, nil
}

// List returns the caller's dives, newest date first.
func (s *diveService) List(ctx context.Context, userID uuid.UUID) ([]model.Dive, error) {
	return s.diveRepo.ListByOwner(ctx, userID)
}

// ListSpecies returns the species attached to one of the caller's dives.
func (s *diveService) ListSpecies(ctx context.Context, userID uuid.UUID, diveID uint) ([]model.Species, error) {
	if _, err := s.ownedDive(ctx, userID, diveID); err != nil {
		return nil, err
	}
	return s.diveRepo.ListSpecies(ctx, diveID)
}

// AddSpecies attaches a species to one of the caller's dives, creating the
// catalog entry if the name is new. The link existence check runs first, but
// the unique index on (dive, species) is the final arbiter: a duplicate-key
// error from a racing insert maps to the same conflict.
func (s *diveService) AddSpecies(ctx context.Context, userID uuid.UUID, diveID uint, nom string, image *string) (*model.Species, error) {
	if _, err := s.ownedDive(ctx, userID, diveID); err != nil {
		return nil, err
	}

	species, created, err := s.speciesRepo.FindOrCreateByNom(ctx, nom, image)
	if err != nil {
		return nil, fmt.Errorf("find or create species: %w", err)
	}
	if created {
		_ = s.cache.DeletePrefix(ctx, catalogKeyPrefix)
	}

	exists, err := s.diveRepo.LinkExists(ctx, diveID, species.ID)
	if err != nil {
		return nil, fmt.Errorf("check species link: %w", err)
	}
	if exists {
		return nil, apperrors.ErrSpeciesAlreadyAdded
	}

	if err := s.diveRepo.LinkSpecies(ctx, diveID, species.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSpeciesAlreadyAdded
		}
		return nil, fmt.Errorf("link species: %w", err)
	}
	return species, nil
}

// ownedDive resolves the dive for the caller. Dives owned by other users are
// reported as not found so their existence does not leak.
func (s *diveService) ownedDive(ctx context.Context, userID uuid.UUID, diveID uint) (*model.Dive, error) {
	dive, err := s.diveRepo.FindOwned(ctx, diveID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDiveNotFound
		}
		return nil, fmt.Errorf("find dive: %w", err)
	}
	return dive, nil
}
