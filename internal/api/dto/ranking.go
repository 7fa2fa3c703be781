package dto

import (
	"errors"
	"fmt"
	"math"
	"order-ranking-service/internal/domain"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// Field errors are reported with their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type OrderLineRequest struct {
	ProductID int `json:"product_id" validate:"required"`
	Quantity  int `json:"quantity" validate:"min=1,max=100"`
}

type OrderRequest struct {
	ID      int                `json:"id" validate:"required"`
	Address string             `json:"address" validate:"required"`
	Lines   []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type RankingRequest struct {
	Orders []OrderRequest `json:"orders" validate:"required,min=1,max=500,dive"`
}

// Validate checks the request shape and returns a client-facing message on failure.
func (r RankingRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace is "RankingRequest.orders[0].lines[1].quantity"; drop the root.
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ToDomain converts the request into orders ready for ranking.
func (r RankingRequest) ToDomain() []domain.Order {
	orders := make([]domain.Order, 0, len(r.Orders))
	for _, o := range r.Orders {
		lines := make([]domain.OrderLine, 0, len(o.Lines))
		for _, l := range o.Lines {
			lines = append(lines, domain.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		orders = append(orders, domain.Order{
			OrderID: o.ID,
			Address: o.Address,
			Lines:   lines,
			Status:  domain.OrderStatusInProgress,
		})
	}
	return orders
}

type RankedRestaurantResponse struct {
	RestaurantID int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	DistanceKm   float64 `json:"distance_km"`
}

type OrderRankingResponse struct {
	OrderID     int                        `json:"order_id"`
	Restaurants []RankedRestaurantResponse `json:"restaurants"`
}

type OrderFailureResponse struct {
	OrderID int    `json:"order_id"`
	Error   string `json:"error"`
}

type RankingResponse struct {
	Rankings   []OrderRankingResponse `json:"rankings"`
	Unresolved []OrderFailureResponse `json:"unresolved"`
	Invalid    []OrderFailureResponse `json:"invalid"`
}

func NewRankingResponse(report *domain.RankingReport) RankingResponse {
	res := RankingResponse{
		Rankings:   make([]OrderRankingResponse, 0, len(report.Rankings)),
		Unresolved: failures(report.Unresolved),
		Invalid:    failures(report.Invalid),
	}

	for _, r := range report.Rankings {
		restaurants := make([]RankedRestaurantResponse, 0, len(r.Candidates))
		for _, c := range r.Candidates {
			restaurants = append(restaurants, RankedRestaurantResponse{
				RestaurantID: c.Restaurant.RestaurantID,
				Name:         c.Restaurant.Name,
				Address:      c.Restaurant.Address,
				DistanceKm:   roundKm(c.DistanceKm),
			})
		}
		res.Rankings = append(res.Rankings, OrderRankingResponse{
			OrderID:     r.OrderID,
			Restaurants: restaurants,
		})
	}

	return res
}

func failures(in []domain.OrderFailure) []OrderFailureResponse {
	out := make([]OrderFailureResponse, 0, len(in))
	for _, f := range in {
		out = append(out, OrderFailureResponse{OrderID: f.OrderID, Error: f.Err.Error()})
	}
	return out
}

// Metre precision.
func roundKm(km float64) float64 {
	return math.Round(km*1000) / 1000
}
