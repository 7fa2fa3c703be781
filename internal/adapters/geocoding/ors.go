package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"
	"time"
)

const ORSBaseURL = "https://api.openrouteservice.org"

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses using OpenRouteService (/geocode/search).
type ORSGeocoder struct {
	transport
	baseURL string
}

func NewORSGeocoder(cfg ClientConfig) *ORSGeocoder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ORSBaseURL
	}

	return &ORSGeocoder{
		transport: newTransport(cfg),
		baseURL:   baseURL,
	}
}

func (o *ORSGeocoder) Resolve(
	ctx context.Context,
	apiKey string,
	address string,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	start := time.Now()
	defer func() { recordOutcome(start, err) }()

	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", apiKey)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("text", address)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w: %w", address, domain.ErrGeocodeUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: decode response: %w: %w", address, domain.ErrGeocodeUnavailable, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", address, domain.ErrGeocodeNoResult)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: invalid coordinate format: %w", address, domain.ErrGeocodeUnavailable)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
