package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"divelog/internal/model"
	"divelog/internal/service"
)

// DiveHandler handles the caller-scoped dive log endpoints.
type DiveHandler struct {
	diveService service.DiveService
}

// NewDiveHandler creates a new dive handler.
func NewDiveHandler(diveService service.DiveService) *DiveHandler {
	return &DiveHandler{diveService: diveService}
}

// CreateDiveRequest represents a dive creation request.
type CreateDiveRequest struct {
	Titre       string   `json:"titre" validate:"required,min=3"`
	Description *string  `json:"description"`
	Date        string   `json:"date" validate:"required"`
	Type        *string  `json:"type"`
	Profondeur  *float64 `json:"profondeur" validate:"omitempty,gt=0"`
	Temps       *int     `json:"temps" validate:"omitempty,gt=0"`
	Lieu        *string  `json:"lieu"`
}

// AddSpeciesRequest attaches a species to a dive by name.
type AddSpeciesRequest struct {
	Nom      string `json:"nom" validate:"required"`
	SpecCode int    `json:"specCode"`
}

// List godoc
// @Summary List the caller's dives, newest date first
// @Tags dives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /dives [get]
func (h *DiveHandler) List(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	dives, err := h.diveService.List(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"plongees": dives,
		"total":    len(dives),
	})
}

// Create godoc
// @Summary Log a new dive
// @Tags dives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDiveRequest true "Dive data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /dives [post]
func (h *DiveHandler) Create(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateDiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	dive := &model.Dive{
		Titre:       req.Titre,
		Description: req.Description,
		Date:        date,
		Type:        req.Type,
		Profondeur:  req.Profondeur,
		Temps:       req.Temps,
		Lieu:        req.Lieu,
	}

	created, err := h.diveService.Create(c.Request().Context(), id, dive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "dive logged",
		"plongee": created,
	})
}

// ListSpecies godoc
// @Summary List species observed on one of the caller's dives
// @Tags dives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dive ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dives/{id}/species [get]
func (h *DiveHandler) ListSpecies(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	diveID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dive id")
	}

	species, err := h.diveService.ListSpecies(c.Request().Context(), id, uint(diveID))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"especes": species})
}

// AddSpecies godoc
// @Summary Attach an observed species to one of the caller's dives
// @Tags dives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dive ID"
// @Param request body AddSpeciesRequest true "Species name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /dives/{id}/species [post]
func (h *DiveHandler) AddSpecies(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	diveID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dive id")
	}

	var req AddSpeciesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	species, err := h.diveService.AddSpecies(c.Request().Context(), id, uint(diveID), req.Nom, nil)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "species added",
		"especeId": species.ID,
	})
}
