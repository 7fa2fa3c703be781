package domain

// A dish or drink that restaurants may list on their menus.
type Product struct {
	ProductID int
	Name      string
}

// A physical restaurant. Address is the geocoding input used for ranking.
type Restaurant struct {
	RestaurantID int
	Name         string
	Address      string
	ContactPhone string
}

// Relates one restaurant to one product.
// At most one entry exists per (restaurant, product) pair; only entries with
// Availability set are considered when matching orders.
type MenuEntry struct {
	RestaurantID int
	ProductID    int
	Availability bool
}
