package ports

import (
	"context"
	"order-ranking-service/internal/domain"
)

// Contract for resolving a single address into coordinates via an external provider.
//
// Implementations must return an error wrapping domain.ErrGeocodeUnavailable on
// transport or HTTP failures and domain.ErrGeocodeNoResult when the provider
// finds no match.
type Geocoder interface {
	Resolve(ctx context.Context, apiKey string, address string) (domain.Coordinates, error)
}
