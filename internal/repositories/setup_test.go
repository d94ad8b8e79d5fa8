package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(&models.User{}, &models.PantryItem{}, &models.Ingredient{}, &models.Recipe{}, &models.Follow{})
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, repo *PostgresUserRepository, nickname, email string) *models.User {
	t.Helper()
	user := &models.User{Nickname: nickname, Email: email}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}
