package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"divelog/internal/model"
)

// DiveRepository defines dive persistence operations.
type DiveRepository interface {
	Create(ctx context.Context, dive *model.Dive) error
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Dive, error)
	FindOwned(ctx context.Context, id uint, userID uuid.UUID) (*model.Dive, error)
	ListSpecies(ctx context.Context, diveID uint) ([]model.Species, error)
	LinkExists(ctx context.Context, diveID, speciesID uint) (bool, error)
	LinkSpecies(ctx context.Context, diveID, speciesID uint) error
}

type diveRepository struct {
	db *gorm.DB
}

// NewDiveRepository builds a GORM-backed repository.
func NewDiveRepository(db *gorm.DB) DiveRepository {
	return &diveRepository{db: db}
}

func (r *diveRepository) Create(ctx context.Context, dive *model.Dive) error {
	return r.db.WithContext(ctx).Create(dive).Error
}

func (r *diveRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Dive, error) {
	var dives []model.Dive
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&dives).Error
	if err != nil {
		return nil, err
	}
	return dives, nil
}

// FindOwned returns the dive only when it belongs to userID; a dive owned by
// someone else is indistinguishable from a missing one.
func (r *diveRepository) FindOwned(ctx context.Context, id uint, userID uuid.UUID) (*model.Dive, error) {
	var dive model.Dive
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&dive).Error
	if err != nil {
		return nil, err
	}
	return &dive, nil
}

func (r *diveRepository) ListSpecies(ctx context.Context, diveID uint) ([]model.Species, error) {
	var species []model.Species
	err := r.db.WithContext(ctx).Model(&model.Species{}).
		Joins("INNER JOIN dive_species ON dive_species.species_id = species.id").
		Where("dive_species.dive_id = ?", diveID).
		Find(&species).Error
	if err != nil {
		return nil, err
	}
	return species, nil
}

func (r *diveRepository) LinkExists(ctx context.Context, diveID, speciesID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DiveSpecies{}).
		Where("dive_id = ? AND species_id = ?", diveID, speciesID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *diveRepository) LinkSpecies(ctx context.Context, diveID, speciesID uint) error {
	return r.db.WithContext(ctx).Create(&model.DiveSpecies{
		DiveID:    diveID,
		SpeciesID: speciesID,
	}).Error
}
