package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListAvailableMenuEntriesQuery(t *testing.T) {
	query, args, err := listAvailableMenuEntriesQuery().ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT restaurant_id, product_id, availability FROM menu_entries WHERE availability = $1 ORDER BY product_id, restaurant_id",
		query,
	)
	require.Equal(t, []any{true}, args)
}

func TestListOpenOrdersQuery(t *testing.T) {
	query, args, err := listOpenOrdersQuery().ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT order_id, address, firstname, lastname, phonenumber, status, created_at FROM orders WHERE status <> $1 ORDER BY created_at, order_id",
		query,
	)
	require.Equal(t, []any{"done"}, args)
}

func TestListOrderLinesQuery(t *testing.T) {
	query, args, err := listOrderLinesQuery([]int{4, 8, 15}).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT order_id, product_id, quantity FROM order_lines WHERE order_id IN ($1,$2,$3) ORDER BY order_id, line_id",
		query,
	)
	require.Equal(t, []any{4, 8, 15}, args)
}
