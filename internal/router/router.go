package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"divelog/internal/auth"
	"divelog/internal/config"
	"divelog/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	diveHandler *handler.DiveHandler,
	speciesHandler *handler.SpeciesHandler,
	fishHandler *handler.FishHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(Metrics())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/species", speciesHandler.Catalog)
	api.POST("/species", speciesHandler.Create)
	api.GET("/fish", fishHandler.Search)
	api.GET("/fish/:speccode", fishHandler.Detail)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/update-profile", authHandler.UpdateProfile)
	secured.PUT("/auth/change-password", authHandler.ChangePassword)
	secured.DELETE("/auth/delete-account", authHandler.DeleteAccount)

	// Dive routes
	secured.GET("/dives", diveHandler.List)
	secured.POST("/dives", diveHandler.Create)
	secured.GET("/dives/:id/species", diveHandler.ListSpecies)
	secured.POST("/dives/:id/species", diveHandler.AddSpecies)

	// Admin routes (role check happens in the service layer)
	secured.GET("/admin/users", adminHandler.ListUsers)
	secured.PATCH("/admin/users/:id/block", adminHandler.BlockUser)
	secured.PATCH("/admin/users/:id/promote", adminHandler.PromoteUser)
	secured.DELETE("/admin/users/:id", adminHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
