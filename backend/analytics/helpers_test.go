package analytics

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tishamal/righttoread/backend/models"
)

// newTestService returns a Service over a fresh in-memory sqlite store with
// the full schema migrated. Single connection so every query sees the same
// memory database.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.School{},
		&models.BookUsage{},
		&models.PageSession{},
		&models.SyncLog{},
		&models.DeviceInfo{},
	))

	return New(db)
}
