package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"divelog/internal/model"
)

// testDB opens an isolated in-memory database per test and migrates the full
// schema, so uniqueness and cascade behavior run against real constraints.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Dive{},
		&model.Species{},
		&model.DiveSpecies{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, pseudo string) *model.User {
	t.Helper()
	user := &model.User{
		Pseudo:       pseudo,
		PasswordHash: "hash",
		Nom:          "Nom",
		Prenom:       "Prenom",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createDive(t *testing.T, db *gorm.DB, user *model.User, titre string, date time.Time) *model.Dive {
	t.Helper()
	dive := &model.Dive{
		Titre:  titre,
		Date:   date,
		UserID: user.ID,
	}
	require.NoError(t, db.Create(dive).Error)
	return dive
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}

var testCtx = context.Background()
