package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"
	"order-ranking-service/internal/ports"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultRankWorkers = 8

type RankRequest struct {
	Orders          []domain.Order
	RestaurantsByID map[int]domain.Restaurant
	Index           *AvailabilityIndex
	// Maximum number of concurrent address resolutions. Zero uses the default.
	Workers int
}

type resolution struct {
	coords domain.Coordinates
	err    error
}

type matchedOrder struct {
	order      domain.Order
	candidates []domain.Restaurant
}

// RankRestaurantsForOrders ranks, for every order, the restaurants able to
// fulfill it by ascending distance to the delivery address.
//
// Failures are contained per order: orders without lines are reported as
// invalid, orders whose own address cannot be resolved are reported as
// unresolved, and a candidate whose address cannot be resolved is dropped from
// that order only. Address resolutions for the whole batch run on a bounded
// worker pool, each distinct address once.
func RankRestaurantsForOrders(
	ctx context.Context,
	req RankRequest,
	resolver ports.CoordinateResolver,
) (_ *domain.RankingReport, err error) {
	defer obs.Time(ctx, "ranking.RankRestaurantsForOrders")(&err)

	if resolver == nil {
		return nil, errors.New("rank restaurants: resolver must be non-nil")
	}
	if req.Index == nil {
		return nil, errors.New("rank restaurants: availability index must be non-nil")
	}

	report := &domain.RankingReport{
		Rankings:   make([]domain.OrderRanking, 0, len(req.Orders)),
		Unresolved: []domain.OrderFailure{},
		Invalid:    []domain.OrderFailure{},
	}

	matched := make([]matchedOrder, 0, len(req.Orders))
	addresses := make([]string, 0)
	seen := make(map[string]struct{})
	addAddress := func(a string) {
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		addresses = append(addresses, a)
	}

	for _, order := range req.Orders {
		ids, err := MatchRestaurants(order, req.Index)
		if err != nil {
			report.Invalid = append(report.Invalid, domain.OrderFailure{OrderID: order.OrderID, Err: err})
			continue
		}

		candidates := make([]domain.Restaurant, 0, len(ids))
		for _, id := range ids.Sorted() {
			rest, ok := req.RestaurantsByID[id]
			if !ok {
				log.Warn().Int("order_id", order.OrderID).Int("restaurant_id", id).
					Msg("candidate restaurant missing from restaurant list, dropping")
				continue
			}
			candidates = append(candidates, rest)
		}

		matched = append(matched, matchedOrder{order: order, candidates: candidates})

		// An order nobody can fulfill needs no coordinates at all.
		if len(candidates) == 0 {
			continue
		}
		addAddress(order.Address)
		for _, rest := range candidates {
			addAddress(rest.Address)
		}
	}

	resolved := resolveAll(ctx, resolver, addresses, req.Workers)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rank restaurants: %w", err)
	}

	for _, m := range matched {
		if len(m.candidates) == 0 {
			report.Rankings = append(report.Rankings, domain.OrderRanking{
				OrderID:    m.order.OrderID,
				Candidates: []domain.RankedRestaurant{},
			})
			continue
		}

		dest := resolved[m.order.Address]
		if dest.err != nil {
			report.Unresolved = append(report.Unresolved, domain.OrderFailure{OrderID: m.order.OrderID, Err: dest.err})
			continue
		}

		ranked := make([]domain.RankedRestaurant, 0, len(m.candidates))
		for _, rest := range m.candidates {
			origin := resolved[rest.Address]
			if origin.err != nil {
				obs.DroppedCandidates.Inc()
				log.Warn().Err(origin.err).
					Int("order_id", m.order.OrderID).
					Int("restaurant_id", rest.RestaurantID).
					Msg("restaurant address unresolved, dropping candidate")
				continue
			}

			ranked = append(ranked, domain.RankedRestaurant{
				Restaurant: rest,
				DistanceKm: DistanceKm(origin.coords, dest.coords),
			})
		}

		// Tie-breaker keeps the output reproducible when distances are equal.
		slices.SortFunc(ranked, func(a, b domain.RankedRestaurant) int {
			if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
				return c
			}
			return cmp.Compare(a.Restaurant.RestaurantID, b.Restaurant.RestaurantID)
		})

		report.Rankings = append(report.Rankings, domain.OrderRanking{
			OrderID:    m.order.OrderID,
			Candidates: ranked,
		})
	}

	obs.RankedOrders.WithLabelValues("ranked").Add(float64(len(report.Rankings)))
	obs.RankedOrders.WithLabelValues("unresolved").Add(float64(len(report.Unresolved)))
	obs.RankedOrders.WithLabelValues("invalid").Add(float64(len(report.Invalid)))

	return report, nil
}

// resolveAll resolves every address with at most workers lookups in flight.
// A failed lookup never cancels the others.
func resolveAll(
	ctx context.Context,
	resolver ports.CoordinateResolver,
	addresses []string,
	workers int,
) map[string]resolution {
	if workers <= 0 {
		workers = defaultRankWorkers
	}

	var (
		mu  sync.Mutex
		out = make(map[string]resolution, len(addresses))
		g   errgroup.Group
	)
	g.SetLimit(workers)

	for _, addr := range addresses {
		g.Go(func() error {
			coords, err := resolver.Resolve(ctx, addr)

			mu.Lock()
			out[addr] = resolution{coords: coords, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}
