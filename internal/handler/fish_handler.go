package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"divelog/internal/fishbase"
)

// FishHandler proxies name lookups to the external rfishbase service.
type FishHandler struct {
	client *fishbase.Client
}

// NewFishHandler creates a new fish lookup handler.
func NewFishHandler(client *fishbase.Client) *FishHandler {
	return &FishHandler{client: client}
}

// Search godoc
// @Summary Look up fish species by name in the external catalog
// @Tags fish
// @Produce json
// @Param q query string true "Name fragment, at least 2 characters"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /fish [get]
func (h *FishHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if len(query) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "search query must be at least 2 characters")
	}

	fishes, err := h.client.Search(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"especes": fishes,
		"total":   len(fishes),
		"query":   query,
	})
}

// Detail godoc
// @Summary Get the external catalog's detail record for a spec code
// @Tags fish
// @Produce json
// @Param speccode path int true "FishBase spec code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /fish/{speccode} [get]
func (h *FishHandler) Detail(c echo.Context) error {
	specCode, err := strconv.Atoi(c.Param("speccode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid spec code")
	}

	poisson, err := h.client.Details(c.Request().Context(), specCode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"poisson": poisson})
}
