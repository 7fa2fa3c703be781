package services

import (
	"context"
	"fmt"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/ports"
)

// Load restaurants and current availability and build a fresh index.
func loadMenu(
	ctx context.Context,
	menuRepo ports.MenuRepository,
) (map[int]domain.Restaurant, *AvailabilityIndex, error) {
	restaurants, err := menuRepo.ListRestaurants(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load menu: list restaurants: %w", err)
	}

	entries, err := menuRepo.ListAvailableMenuEntries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load menu: list menu entries: %w", err)
	}

	byID := make(map[int]domain.Restaurant, len(restaurants))
	for _, r := range restaurants {
		byID[r.RestaurantID] = r
	}

	return byID, BuildAvailabilityIndex(entries), nil
}

// RankOrders ranks the given orders against the current menus.
func RankOrders(
	ctx context.Context,
	orders []domain.Order,
	menuRepo ports.MenuRepository,
	resolver ports.CoordinateResolver,
	workers int,
) (*domain.RankingReport, error) {
	restaurants, index, err := loadMenu(ctx, menuRepo)
	if err != nil {
		return nil, fmt.Errorf("rank orders: %w", err)
	}

	report, err := RankRestaurantsForOrders(ctx, RankRequest{
		Orders:          orders,
		RestaurantsByID: restaurants,
		Index:           index,
		Workers:         workers,
	}, resolver)
	if err != nil {
		return nil, fmt.Errorf("rank orders: %w", err)
	}

	return report, nil
}

// RankOpenOrders loads every open order from the store and ranks it.
func RankOpenOrders(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	menuRepo ports.MenuRepository,
	resolver ports.CoordinateResolver,
	workers int,
) (*domain.RankingReport, error) {
	orders, err := orderRepo.ListOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank open orders: list orders: %w", err)
	}

	return RankOrders(ctx, orders, menuRepo, resolver, workers)
}
