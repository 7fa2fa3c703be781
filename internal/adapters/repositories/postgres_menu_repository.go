package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Postgres-backed implementation of the MenuRepository port.
type PostgresMenuRepository struct{ DB *sql.DB }

func NewPostgresMenuRepository(db *sql.DB) *PostgresMenuRepository {
	return &PostgresMenuRepository{DB: db}
}

func listRestaurantsQuery() sq.SelectBuilder {
	return psql.
		Select("restaurant_id", "name", "address", "contact_phone").
		From("restaurants").
		OrderBy("restaurant_id")
}

func listAvailableMenuEntriesQuery() sq.SelectBuilder {
	return psql.
		Select("restaurant_id", "product_id", "availability").
		From("menu_entries").
		Where(sq.Eq{"availability": true}).
		OrderBy("product_id", "restaurant_id")
}

func listProductsQuery() sq.SelectBuilder {
	return psql.
		Select("product_id", "name").
		From("products").
		OrderBy("product_id")
}

// Return all restaurants stored in the database.
func (r *PostgresMenuRepository) ListRestaurants(ctx context.Context) (_ []domain.Restaurant, err error) {
	defer obs.Time(ctx, "menu.ListRestaurants")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres menu repository: DB is nil")
	}

	query, args, err := listRestaurantsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("list restaurants: build query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: query restaurants table: %w", err)
	}
	defer rows.Close()

	restaurants := make([]domain.Restaurant, 0, 32)
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.RestaurantID, &rest.Name, &rest.Address, &rest.ContactPhone); err != nil {
			return nil, fmt.Errorf("list restaurants: scan row: %w", err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: row iteration: %w", err)
	}

	return restaurants, nil
}

// Return menu entries whose availability flag is set.
func (r *PostgresMenuRepository) ListAvailableMenuEntries(ctx context.Context) (_ []domain.MenuEntry, err error) {
	defer obs.Time(ctx, "menu.ListAvailableMenuEntries")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres menu repository: DB is nil")
	}

	query, args, err := listAvailableMenuEntriesQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("list menu entries: build query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu entries: query menu_entries table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.MenuEntry, 0, 128)
	for rows.Next() {
		var e domain.MenuEntry
		if err := rows.Scan(&e.RestaurantID, &e.ProductID, &e.Availability); err != nil {
			return nil, fmt.Errorf("list menu entries: scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list menu entries: row iteration: %w", err)
	}

	return entries, nil
}

// Return all products stored in the database.
func (r *PostgresMenuRepository) ListProducts(ctx context.Context) (_ []domain.Product, err error) {
	if r.DB == nil {
		return nil, errors.New("postgres menu repository: DB is nil")
	}

	query, args, err := listProductsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("list products: build query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.Name); err != nil {
			return nil, fmt.Errorf("list products: scan row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}

	return products, nil
}
