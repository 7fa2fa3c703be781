package ports

import (
	"context"
	"order-ranking-service/internal/domain"
)

// Resolves addresses to coordinates, hiding any caching in front of the geocoder.
type CoordinateResolver interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
}
