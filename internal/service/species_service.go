package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"divelog/internal/cache"
	"divelog/internal/model"
	"divelog/internal/repository"
)

const (
	catalogCacheTTL  = time.Minute
	catalogPageLimit = 100
	catalogKeyPrefix = "species:catalog:"
)

// CatalogPage is one page of the species catalog.
type CatalogPage struct {
	Especes    []model.Species `json:"especes"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// SpeciesService handles the shared species catalog.
type SpeciesService interface {
	CatalogPage(ctx context.Context, page, limit int, search string) (*CatalogPage, error)
	LookupOrCreate(ctx context.Context, nom string, image *string) (species *model.Species, created bool, err error)
}

type speciesService struct {
	repo  repository.SpeciesRepository
	cache *cache.Client
}

// NewSpeciesService builds a SpeciesService with repository and cache.
func NewSpeciesService(repo repository.SpeciesRepository, cache *cache.Client) SpeciesService {
	return &speciesService{repo: repo, cache: cache}
}

func (s *speciesService) cacheKey(page, limit int, search string) string {
	return fmt.Sprintf("%s%d:%d:%s", catalogKeyPrefix, page, limit, search)
}

// CatalogPage returns a page of species. Pages are cached briefly and
// invalidated when a species is created.
func (s *speciesService) CatalogPage(ctx context.Context, page, limit int, search string) (*CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	if limit > catalogPageLimit {
		limit = catalogPageLimit
	}

	key := s.cacheKey(page, limit, search)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached CatalogPage
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	offset := (page - 1) * limit
	especes, err := s.repo.ListPage(ctx, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count species: %w", err)
	}

	result := &CatalogPage{
		Especes:    especes,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, catalogCacheTTL)
	}
	return result, nil
}

// LookupOrCreate returns the existing species for nom or creates one. A
// creation drops the cached catalog pages so the new entry is visible
// immediately rather than after the TTL.
func (s *speciesService) LookupOrCreate(ctx context.Context, nom string, image *string) (*model.Species, bool, error) {
	species, created, err := s.repo.FindOrCreateByNom(ctx, nom, image)
	if err != nil {
		return nil, false, err
	}
	if created {
		_ = s.cache.DeletePrefix(ctx, catalogKeyPrefix)
	}
	return species, created, nil
}
