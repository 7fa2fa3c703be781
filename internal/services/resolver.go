package services

import (
	"context"
	"errors"
	"fmt"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"
	"order-ranking-service/internal/ports"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// NormalizeAddress ensures consistent cache keys by collapsing whitespace.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CoordinateResolver resolves addresses through a cache-aside lookup in front
// of a geocoder.
//
// Concurrent misses for the same address share a single geocoder call, and
// provider calls can be rate limited. Failed lookups are never cached.
// The resolver is safe for concurrent use.
type CoordinateResolver struct {
	geocoder ports.Geocoder
	cache    ports.CoordinateCache
	apiKey   string
	limiter  *rate.Limiter
	flights  singleflight.Group
}

type ResolverOption func(*CoordinateResolver)

// WithRateLimit caps geocoder calls at rps requests per second with the given burst.
func WithRateLimit(rps float64, burst int) ResolverOption {
	return func(r *CoordinateResolver) {
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewCoordinateResolver(
	geocoder ports.Geocoder,
	cache ports.CoordinateCache,
	apiKey string,
	opts ...ResolverOption,
) (*CoordinateResolver, error) {
	if geocoder == nil {
		return nil, errors.New("new coordinate resolver: geocoder must be non-nil")
	}
	if cache == nil {
		return nil, errors.New("new coordinate resolver: cache must be non-nil")
	}

	r := &CoordinateResolver{
		geocoder: geocoder,
		cache:    cache,
		apiKey:   apiKey,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *CoordinateResolver) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	key := NormalizeAddress(address)
	if key == "" {
		return domain.Coordinates{}, fmt.Errorf("resolve coordinates: address must be non-empty: %w", domain.ErrGeocodeNoResult)
	}

	if coords, ok := r.lookup(ctx, key); ok {
		return coords, nil
	}

	v, err, _ := r.flights.Do(key, func() (any, error) {
		// A flight that finished just before this one started may have filled the cache.
		if coords, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			return coords, nil
		}
		return r.fetch(ctx, key)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve coordinates %q: %w", key, err)
	}

	return v.(domain.Coordinates), nil
}

// lookup reads the cache. Cache failures degrade to a miss.
func (r *CoordinateResolver) lookup(ctx context.Context, key string) (domain.Coordinates, bool) {
	coords, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		obs.CacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("address", key).Msg("coordinate cache read failed")
		return domain.Coordinates{}, false
	}
	if !ok {
		obs.CacheLookups.WithLabelValues("miss").Inc()
		return domain.Coordinates{}, false
	}

	obs.CacheLookups.WithLabelValues("hit").Inc()
	return coords, true
}

func (r *CoordinateResolver) fetch(ctx context.Context, key string) (domain.Coordinates, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return domain.Coordinates{}, fmt.Errorf("wait for rate limiter: %w: %w", domain.ErrGeocodeUnavailable, err)
		}
	}

	coords, err := r.geocoder.Resolve(ctx, r.apiKey, key)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if err := r.cache.Set(ctx, key, coords); err != nil {
		log.Warn().Err(err).Str("address", key).Msg("coordinate cache write failed")
	}

	return coords, nil
}
