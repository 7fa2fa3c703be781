package ports

import (
	"context"
	"order-ranking-service/internal/domain"
)

// Address -> coordinates cache with a fixed time-to-live.
// Expired entries are reported as absent (ok=false), never as an error.
type CoordinateCache interface {
	Get(ctx context.Context, address string) (coords domain.Coordinates, ok bool, err error)
	Set(ctx context.Context, address string, coords domain.Coordinates) error
}
