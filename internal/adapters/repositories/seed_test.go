package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedValidate(t *testing.T) {
	valid := func() Seed {
		return Seed{
			Products:    []ProductSeed{{ProductID: 1, Name: "Burger"}},
			Restaurants: []RestaurantSeed{{RestaurantID: 1, Name: "Star Burger", Address: "A"}},
			Menu:        []MenuEntrySeed{{RestaurantID: 1, ProductID: 1}},
			Orders: []OrderSeed{{
				OrderID: 1,
				Address: "C",
				Lines:   []OrderLineSeed{{ProductID: 1, Quantity: 2}},
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *Seed)
		wantErr string
	}{
		{name: "valid", mutate: func(s *Seed) {}},
		{
			name:    "bad product id",
			mutate:  func(s *Seed) { s.Products[0].ProductID = 0 },
			wantErr: "invalid product_id",
		},
		{
			name: "duplicate menu entry",
			mutate: func(s *Seed) {
				s.Menu = append(s.Menu, MenuEntrySeed{RestaurantID: 1, ProductID: 1})
			},
			wantErr: "duplicate menu entry",
		},
		{
			name:    "empty order address",
			mutate:  func(s *Seed) { s.Orders[0].Address = "  " },
			wantErr: "address cannot be empty",
		},
		{
			name:    "zero quantity",
			mutate:  func(s *Seed) { s.Orders[0].Lines[0].Quantity = 0 },
			wantErr: "quantity must be between 1 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
