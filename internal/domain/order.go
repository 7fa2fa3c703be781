package domain

import "time"

type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDone       OrderStatus = "done"
)

// Represents a customer order awaiting fulfillment.
// Only Address and Lines take part in ranking; the remaining fields are carried
// through for the operator.
type Order struct {
	OrderID   int
	Address   string
	Lines     []OrderLine
	FirstName string
	LastName  string
	Phone     string
	Status    OrderStatus
	CreatedAt time.Time
}

// A single product line of an order. Quantity must be positive for a
// well-formed order but does not affect matching.
type OrderLine struct {
	ProductID int
	Quantity  int
}

// Return the distinct product IDs referenced by the order, in line order.
func (o Order) ProductIDs() []int {
	seen := make(map[int]struct{}, len(o.Lines))
	ids := make([]int, 0, len(o.Lines))
	for _, line := range o.Lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
