package domain

// A restaurant able to fulfill an order, with its distance to the delivery address.
type RankedRestaurant struct {
	Restaurant Restaurant
	DistanceKm float64
}

// Candidates for a single order sorted by ascending distance.
// An empty Candidates slice means no single restaurant stocks every product.
type OrderRanking struct {
	OrderID    int
	Candidates []RankedRestaurant
}

// An order that could not be ranked, with the reason.
type OrderFailure struct {
	OrderID int
	Err     error
}

// Represents the outcome of ranking a batch of orders.
// Every input order appears in exactly one of the three slices, each kept in
// input order.
type RankingReport struct {
	Rankings   []OrderRanking
	Unresolved []OrderFailure
	Invalid    []OrderFailure
}
