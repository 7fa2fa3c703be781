package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

const YandexBaseURL = "https://geocode-maps.yandex.ru/1.x/"

type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// YandexGeocoder resolves addresses with the Yandex HTTP Geocoder.
// Only the first (most relevant) feature of a response is used.
// The geocoder is safe for concurrent use.
type YandexGeocoder struct {
	transport
	baseURL string
}

func NewYandexGeocoder(cfg ClientConfig) *YandexGeocoder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = YandexBaseURL
	}

	return &YandexGeocoder{
		transport: newTransport(cfg),
		baseURL:   baseURL,
	}
}

func (y *YandexGeocoder) Resolve(
	ctx context.Context,
	apiKey string,
	address string,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "yandex.Resolve")(&err)

	start := time.Now()
	defer func() { recordOutcome(start, err) }()

	resp, err := y.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := url.Values{}
		q.Set("geocode", address)
		q.Set("apikey", apiKey)
		q.Set("format", "json")
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("yandex geocode %q: %w: %w", address, domain.ErrGeocodeUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("yandex geocode %q: decode response: %w: %w", address, domain.ErrGeocodeUnavailable, err)
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return domain.Coordinates{}, fmt.Errorf("yandex geocode %q: %w", address, domain.ErrGeocodeNoResult)
	}

	coords, err := parsePos(members[0].GeoObject.Point.Pos)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("yandex geocode %q: %w: %w", address, domain.ErrGeocodeUnavailable, err)
	}

	return coords, nil
}

// parsePos parses a "<lon> <lat>" position string.
func parsePos(pos string) (domain.Coordinates, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid position %q", pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", parts[1], err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}
