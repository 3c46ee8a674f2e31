package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"divelog/docs"
	"divelog/internal/auth"
	"divelog/internal/cache"
	"divelog/internal/config"
	"divelog/internal/db"
	"divelog/internal/fishbase"
	"divelog/internal/handler"
	"divelog/internal/logutil"
	"divelog/internal/model"
	"divelog/internal/repository"
	"divelog/internal/router"
	"divelog/internal/service"
)

// @title Dive Log API
// @version 1.0
// @description Dive logging API with species catalog, admin user management and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logutil.Setup(cfg.LogLevel)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Dive{},
		&model.Species{},
		&model.DiveSpecies{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	diveRepo := repository.NewDiveRepository(gormDB)
	speciesRepo := repository.NewSpeciesRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtService)
	diveService := service.NewDiveService(userRepo, diveRepo, speciesRepo, cacheClient)
	speciesService := service.NewSpeciesService(speciesRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, roleRepo)
	fishClient := fishbase.New(cfg.FishbaseURL, cfg.FishbaseTimeout, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	diveHandler := handler.NewDiveHandler(diveService)
	speciesHandler := handler.NewSpeciesHandler(speciesService)
	fishHandler := handler.NewFishHandler(fishClient)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		diveHandler,
		speciesHandler,
		fishHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
