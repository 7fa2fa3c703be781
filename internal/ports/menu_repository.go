package ports

import (
	"context"
	"order-ranking-service/internal/domain"
)

// Port: read access to restaurants and their menus.
type MenuRepository interface {
	// Retrieve every restaurant.
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	// Retrieve menu entries currently marked as available.
	ListAvailableMenuEntries(ctx context.Context) ([]domain.MenuEntry, error)
	// Retrieve every product.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
