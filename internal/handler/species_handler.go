package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"divelog/internal/service"
)

// SpeciesHandler handles the public species catalog endpoints.
type SpeciesHandler struct {
	speciesService service.SpeciesService
}

// NewSpeciesHandler creates a new species handler.
func NewSpeciesHandler(speciesService service.SpeciesService) *SpeciesHandler {
	return &SpeciesHandler{speciesService: speciesService}
}

// CreateSpeciesRequest adds a species to the shared catalog.
type CreateSpeciesRequest struct {
	Nom   string  `json:"nom" validate:"required"`
	Image *string `json:"image"`
}

// Catalog godoc
// @Summary Page through the species catalog
// @Tags species
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(12)
// @Param search query string false "Case-insensitive substring match on name"
// @Success 200 {object} service.CatalogPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /species [get]
func (h *SpeciesHandler) Catalog(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page == 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit == 0 {
		limit = 12
	}
	search := c.QueryParam("search")

	result, err := h.speciesService.CatalogPage(c.Request().Context(), page, limit, search)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Create godoc
// @Summary Add a species to the catalog (idempotent on name)
// @Tags species
// @Accept json
// @Produce json
// @Param request body CreateSpeciesRequest true "Species data"
// @Success 200 {object} map[string]interface{} "existing species"
// @Success 201 {object} map[string]interface{} "created species"
// @Failure 400 {object} errors.ErrorResponse
// @Router /species [post]
func (h *SpeciesHandler) Create(c echo.Context) error {
	var req CreateSpeciesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	species, created, err := h.speciesService.LookupOrCreate(c.Request().Context(), req.Nom, req.Image)
	if err != nil {
		return respondError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"espece": species})
}
