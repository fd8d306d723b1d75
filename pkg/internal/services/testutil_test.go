package services

import (
	"testing"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDatabase points database.C at a fresh in-memory store. A single
// connection keeps every query on the same sqlite instance.
func setupDatabase(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	raw, err := db.DB()
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(db))
	database.C = db
}

func makeAuthor(t *testing.T, name string) models.Account {
	t.Helper()

	hash, err := HashPassword("secret")
	require.NoError(t, err)

	account := models.Account{
		Name:     name,
		Email:    name + "@example.com",
		Password: hash,
		IsAdmin:  true,
	}
	require.NoError(t, database.C.Create(&account).Error)

	return account
}
