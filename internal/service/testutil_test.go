package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/unisolve/backend/internal/db"
	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
)

// newTestDB opens an in-memory sqlite database with the real migrations
// applied. A single connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func seedUser(t *testing.T, repo repository.UserRepository, id string) {
	t.Helper()

	username := id
	email := id + "@example.com"
	hash := "not-a-real-hash"
	err := repo.Create(&model.User{
		ID:           id,
		Username:     &username,
		Email:        &email,
		PasswordHash: &hash,
	})
	require.NoError(t, err)
}
