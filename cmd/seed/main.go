// Seeds the database with an administrator account and a starter species
// catalog. Safe to run repeatedly: existing rows are left alone.
package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"divelog/internal/config"
	"divelog/internal/db"
	"divelog/internal/logutil"
	"divelog/internal/model"
)

var starterSpecies = []string{
	"Clownfish",
	"Blue tang",
	"Moray eel",
	"Green sea turtle",
	"Manta ray",
	"Whale shark",
	"Lionfish",
	"Parrotfish",
	"Barracuda",
	"Seahorse",
}

func main() {
	cfg := config.Load()
	logutil.Setup(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Dive{},
		&model.Species{},
		&model.DiveSpecies{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	if err := seedAdmin(gormDB); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	if err := seedSpecies(gormDB); err != nil {
		log.Fatal().Err(err).Msg("seed species")
	}
	log.Info().Msg("seed complete")
}

func seedAdmin(gormDB *gorm.DB) error {
	pseudo := getEnv("ADMIN_PSEUDO", "admin")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	var existing model.User
	err := gormDB.Where("pseudo = ?", pseudo).First(&existing).Error
	if err == nil {
		log.Info().Str("pseudo", pseudo).Msg("admin already present")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		admin := &model.User{
			Pseudo:       pseudo,
			PasswordHash: string(hashed),
			Nom:          "Admin",
			Prenom:       "Admin",
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		return tx.Create(&model.Role{UserID: admin.ID, Admin: true}).Error
	})
}

func seedSpecies(gormDB *gorm.DB) error {
	for _, nom := range starterSpecies {
		var existing model.Species
		err := gormDB.Where("nom = ?", nom).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := gormDB.Create(&model.Species{Nom: nom}).Error; err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
