package cache

import (
	"context"
	"order-ranking-service/internal/adapters/repositories"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/db"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres only when TEST_DATABASE_URL is set.
func openTestDB(t *testing.T) *SQLCoordinateCache {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, repositories.InitSchema(conn))
	_, err = conn.Exec(`TRUNCATE coordinate_cache;`)
	require.NoError(t, err)

	return NewSQLCoordinateCache(conn, time.Minute)
}

func TestSQLCoordinateCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	want := domain.Coordinates{Lon: 37.6, Lat: 55.7}
	require.NoError(t, c.Set(ctx, "A", want))

	got, ok, err := c.Get(ctx, "A")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	now = base.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, "A")
	require.NoError(t, err)
	require.False(t, ok)

	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
}

func TestSQLCoordinateCacheNilDB(t *testing.T) {
	c := NewSQLCoordinateCache(nil, time.Minute)

	err := c.Set(context.Background(), "A", domain.Coordinates{})
	require.ErrorContains(t, err, "db is nil")
}
