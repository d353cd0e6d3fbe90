package database_test

import (
	"testing"

	"listd-backend/internal/domain"
	"listd-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSN(t *testing.T) {
	db, err := database.Open("  ", database.Pool{})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, domain.ErrDatabaseURLMissing)
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, database.IsPostgres("postgres://u:p@localhost/listd"))
	assert.True(t, database.IsPostgres("postgresql://u:p@localhost/listd"))
	assert.False(t, database.IsPostgres(":memory:"))
	assert.False(t, database.IsPostgres("listd.db"))
}

func TestOpen_SQLitePoolAndMigrate(t *testing.T) {
	db, err := database.Open(":memory:", database.Pool{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.Equal(t, "sqlite", db.Dialector.Name())

	require.NoError(t, database.AutoMigrate(db))
	for _, m := range database.Models {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
