package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

var testDBSeq int64

// setupTestDB opens a fresh in-memory SQLite database with the full
// schema. Each test gets its own named database so state never leaks.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodResource{},
		&models.Report{},
		&models.Suggestion{},
	))
	return db
}

func ptr[T any](v T) *T { return &v }
