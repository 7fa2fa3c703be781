package ports

import (
	"context"
	"order-ranking-service/internal/domain"
)

// Port: read access to orders and their lines.
type OrderRepository interface {
	// Retrieve orders that are not yet done, with their lines.
	ListOpenOrders(ctx context.Context) ([]domain.Order, error)
}
