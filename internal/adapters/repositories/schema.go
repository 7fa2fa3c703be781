package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		restaurant_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT ''
	);
	`

	// One row per (restaurant, product) pair.
	createMenuEntriesQuery := `
	CREATE TABLE IF NOT EXISTS menu_entries (
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(restaurant_id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		availability BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (restaurant_id, product_id)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		firstname TEXT NOT NULL DEFAULT '',
		lastname TEXT NOT NULL DEFAULT '',
		phonenumber TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createOrderLinesQuery := `
	CREATE TABLE IF NOT EXISTS order_lines (
		line_id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL CHECK (quantity > 0 AND quantity <= 100)
	);
	`

	createCoordinateCacheQuery := `
	CREATE TABLE IF NOT EXISTS coordinate_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL
    );
	`

	createIndexQueries := []string{
		`CREATE INDEX IF NOT EXISTS idx_menu_entries_available_product
		ON menu_entries(product_id) WHERE availability;`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_order
		ON order_lines(order_id);`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status
		ON orders(status);`,
	}

	statements := []string{
		createProductsQuery,
		createRestaurantsQuery,
		createMenuEntriesQuery,
		createOrdersQuery,
		createOrderLinesQuery,
		createCoordinateCacheQuery,
	}
	statements = append(statements, createIndexQueries...)

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
