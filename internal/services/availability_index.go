package services

import (
	"order-ranking-service/internal/domain"
	"slices"
)

// RestaurantSet is a set of restaurant IDs.
type RestaurantSet map[int]struct{}

func NewRestaurantSet(ids ...int) RestaurantSet {
	s := make(RestaurantSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s RestaurantSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the IDs in ascending order.
func (s RestaurantSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s RestaurantSet) clone() RestaurantSet {
	out := make(RestaurantSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// retainAll drops every ID not present in other.
func (s RestaurantSet) retainAll(other RestaurantSet) {
	for id := range s {
		if !other.Contains(id) {
			delete(s, id)
		}
	}
}

// AvailabilityIndex maps each product to the restaurants that currently stock it.
//
// It is built once per ranking call from available menu entries and never
// mutated afterwards, so it is safe to share between goroutines.
type AvailabilityIndex struct {
	byProduct map[int]RestaurantSet
}

// Build the index in a single pass over the menu entries.
// Entries with Availability unset are skipped.
func BuildAvailabilityIndex(entries []domain.MenuEntry) *AvailabilityIndex {
	byProduct := make(map[int]RestaurantSet)
	for _, e := range entries {
		if !e.Availability {
			continue
		}
		set, ok := byProduct[e.ProductID]
		if !ok {
			set = make(RestaurantSet)
			byProduct[e.ProductID] = set
		}
		set[e.RestaurantID] = struct{}{}
	}
	return &AvailabilityIndex{byProduct: byProduct}
}

// RestaurantsStocking returns the restaurants stocking productID, or an empty
// set. The returned set is shared with the index and must not be modified.
func (ix *AvailabilityIndex) RestaurantsStocking(productID int) RestaurantSet {
	if set, ok := ix.byProduct[productID]; ok {
		return set
	}
	return RestaurantSet{}
}

// Products reports how many distinct products are stocked somewhere.
func (ix *AvailabilityIndex) Products() int { return len(ix.byProduct) }
