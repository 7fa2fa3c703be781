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

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

func listOpenOrdersQuery() sq.SelectBuilder {
	return psql.
		Select("order_id", "address", "firstname", "lastname", "phonenumber", "status", "created_at").
		From("orders").
		Where(sq.NotEq{"status": string(domain.OrderStatusDone)}).
		OrderBy("created_at", "order_id")
}

func listOrderLinesQuery(orderIDs []int) sq.SelectBuilder {
	return psql.
		Select("order_id", "product_id", "quantity").
		From("order_lines").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "line_id")
}

// Return orders that are not done, each with its lines attached.
func (r *PostgresOrderRepository) ListOpenOrders(ctx context.Context) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListOpenOrders")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres order repository: DB is nil")
	}

	query, args, err := listOpenOrdersQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("list open orders: build query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list open orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.OrderID, &o.Address, &o.FirstName, &o.LastName, &o.Phone, &status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("list open orders: scan row: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open orders: row iteration: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachLines(ctx, orders); err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}

	return orders, nil
}

func (r *PostgresOrderRepository) attachLines(ctx context.Context, orders []domain.Order) error {
	byID := make(map[int]int, len(orders))
	ids := make([]int, 0, len(orders))
	for i, o := range orders {
		byID[o.OrderID] = i
		ids = append(ids, o.OrderID)
	}

	query, args, err := listOrderLinesQuery(ids).ToSql()
	if err != nil {
		return fmt.Errorf("attach lines: build query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("attach lines: query order_lines table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var line domain.OrderLine
		if err := rows.Scan(&orderID, &line.ProductID, &line.Quantity); err != nil {
			return fmt.Errorf("attach lines: scan row: %w", err)
		}
		if i, ok := byID[orderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("attach lines: row iteration: %w", err)
	}

	return nil
}
