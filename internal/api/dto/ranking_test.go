package dto

import (
	"errors"
	"order-ranking-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() RankingRequest {
	return RankingRequest{Orders: []OrderRequest{{
		ID:      1,
		Address: "Moscow, Tverskaya 1",
		Lines:   []OrderLineRequest{{ProductID: 10, Quantity: 2}},
	}}}
}

func TestRankingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RankingRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*RankingRequest) {}},
		{
			name:    "no orders",
			mutate:  func(r *RankingRequest) { r.Orders = nil },
			wantErr: "orders: failed required",
		},
		{
			name:    "missing address",
			mutate:  func(r *RankingRequest) { r.Orders[0].Address = "" },
			wantErr: "orders[0].address: failed required",
		},
		{
			name:    "empty lines",
			mutate:  func(r *RankingRequest) { r.Orders[0].Lines = []OrderLineRequest{} },
			wantErr: "orders[0].lines: failed min=1",
		},
		{
			name:    "quantity too large",
			mutate:  func(r *RankingRequest) { r.Orders[0].Lines[0].Quantity = 101 },
			wantErr: "orders[0].lines[0].quantity: failed max=100",
		},
		{
			name:    "zero quantity",
			mutate:  func(r *RankingRequest) { r.Orders[0].Lines[0].Quantity = 0 },
			wantErr: "orders[0].lines[0].quantity: failed min=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRankingRequestToDomain(t *testing.T) {
	orders := validRequest().ToDomain()

	require.Equal(t, []domain.Order{{
		OrderID: 1,
		Address: "Moscow, Tverskaya 1",
		Lines:   []domain.OrderLine{{ProductID: 10, Quantity: 2}},
		Status:  domain.OrderStatusInProgress,
	}}, orders)
}

func TestNewRankingResponse(t *testing.T) {
	report := &domain.RankingReport{
		Rankings: []domain.OrderRanking{
			{OrderID: 1, Candidates: []domain.RankedRestaurant{{
				Restaurant: domain.Restaurant{RestaurantID: 7, Name: "Near", Address: "A"},
				DistanceKm: 1.27828717,
			}}},
			{OrderID: 2, Candidates: []domain.RankedRestaurant{}},
		},
		Unresolved: []domain.OrderFailure{{OrderID: 3, Err: errors.New("geocode: no result")}},
	}

	res := NewRankingResponse(report)

	require.Len(t, res.Rankings, 2)
	require.Equal(t, []RankedRestaurantResponse{{RestaurantID: 7, Name: "Near", Address: "A", DistanceKm: 1.278}}, res.Rankings[0].Restaurants)
	require.NotNil(t, res.Rankings[1].Restaurants)
	require.Empty(t, res.Rankings[1].Restaurants)
	require.Equal(t, []OrderFailureResponse{{OrderID: 3, Error: "geocode: no result"}}, res.Unresolved)
	require.NotNil(t, res.Invalid)
}
