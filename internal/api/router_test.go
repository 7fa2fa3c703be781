package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"order-ranking-service/internal/adapters/cache"
	"order-ranking-service/internal/adapters/geocoding"
	"order-ranking-service/internal/api/dto"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/services"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubMenu struct {
	err error
}

func (s *stubMenu) ListRestaurants(context.Context) ([]domain.Restaurant, error) {
	return []domain.Restaurant{
		{RestaurantID: 1, Name: "Near", Address: "near"},
		{RestaurantID: 2, Name: "Far", Address: "far"},
	}, s.err
}

func (s *stubMenu) ListAvailableMenuEntries(context.Context) ([]domain.MenuEntry, error) {
	return []domain.MenuEntry{
		{RestaurantID: 1, ProductID: 10, Availability: true},
		{RestaurantID: 2, ProductID: 10, Availability: true},
		{RestaurantID: 2, ProductID: 20, Availability: true},
	}, s.err
}

func (s *stubMenu) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{{ProductID: 10, Name: "Borscht"}, {ProductID: 20, Name: "Kvass"}}, s.err
}

type stubOrders struct{}

func (stubOrders) ListOpenOrders(context.Context) ([]domain.Order, error) {
	return []domain.Order{
		{OrderID: 1, Address: "home", Lines: []domain.OrderLine{{ProductID: 10, Quantity: 1}}},
		{OrderID: 2, Address: "home"},
	}, nil
}

func newTestRouter(t *testing.T, menu *stubMenu) http.Handler {
	t.Helper()

	geocoder := geocoding.NewMockGeocoder(map[string]domain.Coordinates{
		"home": {Lon: 37.61, Lat: 55.74},
		"near": {Lon: 37.62, Lat: 55.75},
		"far":  {Lon: 37.70, Lat: 55.80},
	})
	resolver, err := services.NewCoordinateResolver(geocoder, cache.NewMemoryCoordinateCache(time.Hour, nil), "k")
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Orders:      stubOrders{},
		Menu:        menu,
		Resolver:    resolver,
		RankWorkers: 2,
	})
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestHealthRejectsPost(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"products":[{"product_id":10,"name":"Borscht"},{"product_id":20,"name":"Kvass"}]}`, w.Body.String())
}

func TestListOpenRankings(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rankings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res dto.RankingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))

	require.Len(t, res.Rankings, 1)
	require.Equal(t, 1, res.Rankings[0].OrderID)
	require.Len(t, res.Rankings[0].Restaurants, 2)
	require.Equal(t, 1, res.Rankings[0].Restaurants[0].RestaurantID)
	require.Equal(t, 2, res.Rankings[0].Restaurants[1].RestaurantID)
	require.Equal(t, 1.278, res.Rankings[0].Restaurants[0].DistanceKm)

	require.Len(t, res.Invalid, 1)
	require.Equal(t, 2, res.Invalid[0].OrderID)
	require.Empty(t, res.Unresolved)
}

func TestRankPostedOrders(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	body := `{"orders":[
		{"id":5,"address":"home","lines":[{"product_id":10,"quantity":1},{"product_id":20,"quantity":3}]},
		{"id":6,"address":"atlantis","lines":[{"product_id":10,"quantity":1}]},
		{"id":7,"address":"home","lines":[{"product_id":99,"quantity":1}]}
	]}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res dto.RankingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))

	require.Len(t, res.Rankings, 2)
	require.Equal(t, 5, res.Rankings[0].OrderID)
	require.Len(t, res.Rankings[0].Restaurants, 1)
	require.Equal(t, 2, res.Rankings[0].Restaurants[0].RestaurantID)
	require.Equal(t, 7, res.Rankings[1].OrderID)
	require.Empty(t, res.Rankings[1].Restaurants)

	require.Len(t, res.Unresolved, 1)
	require.Equal(t, 6, res.Unresolved[0].OrderID)
	require.Contains(t, res.Unresolved[0].Error, "no result")
}

func TestRankPostedOrdersRejectsBadBodies(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed", body: `{"orders":`, wantErr: "invalid json body"},
		{name: "unknown field", body: `{"orders":[],"hub":"x"}`, wantErr: "invalid json body"},
		{
			name:    "two objects",
			body:    `{"orders":[{"id":1,"address":"home","lines":[{"product_id":10,"quantity":1}]}]}{}`,
			wantErr: "body must contain only one JSON object",
		},
		{
			name:    "quantity out of range",
			body:    `{"orders":[{"id":1,"address":"home","lines":[{"product_id":10,"quantity":0}]}]}`,
			wantErr: "orders[0].lines[0].quantity: failed min=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusBadRequest, w.Code)

			var res map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
			require.Equal(t, tt.wantErr, res["error"])
		})
	}
}

func TestRankingsRepositoryFailure(t *testing.T) {
	router := newTestRouter(t, &stubMenu{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rankings", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubMenu{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rankings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ranked_orders_total")
}
