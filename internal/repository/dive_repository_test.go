package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"divelog/internal/model"
)

func TestDiveRepository_ListByOwnerNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewDiveRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	old := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	createDive(t, db, alice, "Old", old)
	createDive(t, db, alice, "Recent", recent)
	createDive(t, db, alice, "Mid", mid)
	createDive(t, db, bob, "Other", recent)

	dives, err := repo.ListByOwner(testCtx, alice.ID)
	require.NoError(t, err)
	require.Len(t, dives, 3)
	assert.Equal(t, "Recent", dives[0].Titre)
	assert.Equal(t, "Mid", dives[1].Titre)
	assert.Equal(t, "Old", dives[2].Titre)
}

func TestDiveRepository_FindOwnedHidesOtherUsers(t *testing.T) {
	db := testDB(t)
	repo := NewDiveRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	dive := createDive(t, db, bob, "Bob's reef", time.Now())

	_, err := repo.FindOwned(testCtx, dive.ID, alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindOwned(testCtx, dive.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, dive.ID, found.ID)
}

func TestDiveRepository_LinkSpeciesUniqueness(t *testing.T) {
	db := testDB(t)
	repo := NewDiveRepository(db)
	alice := createUser(t, db, "alice")
	dive := createDive(t, db, alice, "Reef", time.Now())

	species := &model.Species{Nom: "Clownfish"}
	require.NoError(t, db.Create(species).Error)

	require.NoError(t, repo.LinkSpecies(testCtx, dive.ID, species.ID))

	err := repo.LinkSpecies(testCtx, dive.ID, species.ID)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, int64(1), count(t, db, &model.DiveSpecies{}, ""))
}

func TestDiveRepository_ListSpecies(t *testing.T) {
	db := testDB(t)
	repo := NewDiveRepository(db)
	alice := createUser(t, db, "alice")
	dive := createDive(t, db, alice, "Reef", time.Now())
	other := createDive(t, db, alice, "Wreck", time.Now())

	clown := &model.Species{Nom: "Clownfish"}
	tang := &model.Species{Nom: "Blue tang"}
	require.NoError(t, db.Create(clown).Error)
	require.NoError(t, db.Create(tang).Error)
	require.NoError(t, repo.LinkSpecies(testCtx, dive.ID, clown.ID))
	require.NoError(t, repo.LinkSpecies(testCtx, other.ID, tang.ID))

	species, err := repo.ListSpecies(testCtx, dive.ID)
	require.NoError(t, err)
	require.Len(t, species, 1)
	assert.Equal(t, "Clownfish", species[0].Nom)

	exists, err := repo.LinkExists(testCtx, dive.ID, clown.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.LinkExists(testCtx, dive.ID, tang.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
