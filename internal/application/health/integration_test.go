//go:build integration

package health

import (
	"context"
	"os"
	"testing"

	"listd-backend/internal/infrastructure/cache"
	"listd-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/require"
)

// TestCollect_RealDependencies runs against real Redis and Postgres when
// REDIS_URL and DATABASE_URL are set.
// Run with: go test -tags=integration ./internal/application/health/... -v
func TestCollect_RealDependencies(t *testing.T) {
	redisURL, dbURL := os.Getenv("REDIS_URL"), os.Getenv("DATABASE_URL")
	if redisURL == "" || dbURL == "" {
		t.Skip("REDIS_URL or DATABASE_URL not set, skipping integration test")
	}
	rdb, err := cache.Open(redisURL)
	require.NoError(t, err)
	defer rdb.Close()
	db, err := database.Open(dbURL, database.Pool{MaxOpenConns: 2})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	result := (&Collector{Rdb: rdb, DB: sqlDB}).Collect(context.Background())
	require.Equal(t, "connected", result.Dependencies["redis"].Status)
	require.Equal(t, "connected", result.Dependencies["database"].Status)
	require.Equal(t, "ok", result.Status)
}
