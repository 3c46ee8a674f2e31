package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"divelog/internal/service"
)

// AdminHandler handles the admin-only user management endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// BlockUserRequest sets a user's blocked flag.
type BlockUserRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// PromoteUserRequest sets a user's admin flag.
type PromoteUserRequest struct {
	Admin *bool `json:"admin" validate:"required"`
}

// ListUsers godoc
// @Summary List all users with their admin flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	users, err := h.adminService.ListUsers(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
		"total": len(users),
	})
}

// BlockUser godoc
// @Summary Block or unblock a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body BlockUserRequest true "Blocked flag"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/block [patch]
func (h *AdminHandler) BlockUser(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req BlockUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.SetBlocked(c.Request().Context(), caller, target, *req.Blocked)
	if err != nil {
		return respondError(c, err)
	}

	message := "user unblocked"
	if *req.Blocked {
		message = "user blocked"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"user":    user,
	})
}

// PromoteUser godoc
// @Summary Grant or revoke a user's admin role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body PromoteUserRequest true "Admin flag"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/promote [patch]
func (h *AdminHandler) PromoteUser(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req PromoteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.adminService.SetAdmin(c.Request().Context(), caller, target, *req.Admin); err != nil {
		return respondError(c, err)
	}

	message := "admin role revoked"
	if *req.Admin {
		message = "user promoted to admin"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// DeleteUser godoc
// @Summary Delete a user and their dives
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), caller, target); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
