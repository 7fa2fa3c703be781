package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLCoordinateCache is a Postgres-backed cache mapping addresses to coordinates.
// Rows carry the time they were fetched; rows older than the TTL are ignored on
// read and overwritten on the next successful resolution.
type SQLCoordinateCache struct {
	DB  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLCoordinateCache(db *sql.DB, ttl time.Duration) *SQLCoordinateCache {
	return &SQLCoordinateCache{DB: db, ttl: ttl, now: time.Now}
}

// Fetch cached coordinates for a single address.
func (s *SQLCoordinateCache) Get(
	ctx context.Context,
	address string,
) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "coordinate.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("coordinate cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lon, lat
    FROM coordinate_cache
    WHERE address = $1
        AND fetched_at >= $2;
	`

	var lon, lat float64
	err = s.DB.QueryRowContext(ctx, q, address, s.now().Add(-s.ttl)).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get coordinate cache: query coordinate_cache table: %w", err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true, nil
}

// Store an address -> coordinate mapping, refreshing its fetch time.
func (s *SQLCoordinateCache) Set(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return errors.New("insert coordinate cache: empty address key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO coordinate_cache (address, lon, lat, fetched_at)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		fetched_at = EXCLUDED.fetched_at;
	`, address, coords.Lon, coords.Lat, s.now())
	if err != nil {
		return fmt.Errorf("insert coordinate cache address=%q: %w", address, err)
	}

	return nil
}

// Sweep deletes rows older than the TTL.
func (s *SQLCoordinateCache) Sweep(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("coordinate cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM coordinate_cache WHERE fetched_at < $1;`, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("sweep coordinate cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep coordinate cache: rows affected: %w", err)
	}

	return int(n), nil
}
