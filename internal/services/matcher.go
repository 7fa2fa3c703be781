package services

import (
	"fmt"
	"order-ranking-service/internal/domain"
)

// Compute the restaurants able to fulfill every line of the order.
//
// The result is the intersection of the per-product stocking sets. It is empty
// as soon as one product is stocked nowhere, or when no restaurant stocks all
// of them. Orders without lines, or with a non-positive quantity, are rejected
// with domain.ErrInvalidOrder.
func MatchRestaurants(order domain.Order, index *AvailabilityIndex) (RestaurantSet, error) {
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("match restaurants: order %d has no lines: %w", order.OrderID, domain.ErrInvalidOrder)
	}
	for i, line := range order.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf(
				"match restaurants: order %d line %d has quantity %d: %w",
				order.OrderID, i+1, line.Quantity, domain.ErrInvalidOrder,
			)
		}
	}

	// nil means "unconstrained" until the first product is seen.
	var result RestaurantSet
	for _, productID := range order.ProductIDs() {
		stocking := index.RestaurantsStocking(productID)
		if len(stocking) == 0 {
			return RestaurantSet{}, nil
		}

		if result == nil {
			result = stocking.clone()
			continue
		}

		result.retainAll(stocking)
		if len(result) == 0 {
			return result, nil
		}
	}

	return result, nil
}
