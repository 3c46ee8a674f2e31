package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"divelog/internal/model"
)

// SpeciesRepository defines species catalog persistence operations.
type SpeciesRepository interface {
	FindByNom(ctx context.Context, nom string) (*model.Species, error)
	Create(ctx context.Context, species *model.Species) error
	FindOrCreateByNom(ctx context.Context, nom string, image *string) (species *model.Species, created bool, err error)
	ListPage(ctx context.Context, search string, limit, offset int) ([]model.Species, error)
	Count(ctx context.Context, search string) (int64, error)
}

type speciesRepository struct {
	db *gorm.DB
}

// NewSpeciesRepository builds a GORM-backed repository.
func NewSpeciesRepository(db *gorm.DB) SpeciesRepository {
	return &speciesRepository{db: db}
}

func (r *speciesRepository) FindByNom(ctx context.Context, nom string) (*model.Species, error) {
	var species model.Species
	if err := r.db.WithContext(ctx).Where("nom = ?", nom).First(&species).Error; err != nil {
		return nil, err
	}
	return &species, nil
}

func (r *speciesRepository) Create(ctx context.Context, species *model.Species) error {
	return r.db.WithContext(ctx).Create(species).Error
}

// FindOrCreateByNom is the idempotent lookup-or-create used when attaching
// species to dives. A concurrent insert of the same name is retried as a
// lookup when the unique index rejects ours.
func (r *speciesRepository) FindOrCreateByNom(ctx context.Context, nom string, image *string) (*model.Species, bool, error) {
	existing, err := r.FindByNom(ctx, nom)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	species := &model.Species{Nom: nom, Image: image}
	if err := r.Create(ctx, species); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := r.FindByNom(ctx, nom)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return species, true, nil
}

func (r *speciesRepository) searchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		// LOWER on both sides keeps the match case-insensitive regardless of
		// column collation.
		return db.Where("LOWER(nom) LIKE LOWER(?)", "%"+search+"%")
	}
}

func (r *speciesRepository) ListPage(ctx context.Context, search string, limit, offset int) ([]model.Species, error) {
	var species []model.Species
	err := r.db.WithContext(ctx).
		Scopes(r.searchScope(search)).
		Order("nom ASC").
		Limit(limit).
		Offset(offset).
		Find(&species).Error
	if err != nil {
		return nil, err
	}
	return species, nil
}

func (r *speciesRepository) Count(ctx context.Context, search string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Species{}).
		Scopes(r.searchScope(search)).
		Count(&count).Error
	return count, err
}
