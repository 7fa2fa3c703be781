package geocoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"order-ranking-service/internal/domain"
	"order-ranking-service/internal/platform/obs"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	initialBackoff = 200 * time.Millisecond
)

// ClientConfig carries the HTTP settings shared by every geocoder.
// MaxAttempts of 1 (or less) disables retries.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// transport wraps an http.Client with status checking and optional bounded retry.
type transport struct {
	session     *http.Client
	maxAttempts int
	backoff     time.Duration
}

func newTransport(cfg ClientConfig) transport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return transport{
		session:     &http.Client{Timeout: timeout},
		maxAttempts: attempts,
		backoff:     initialBackoff,
	}
}

func (t *transport) do(req *http.Request) (*http.Response, error) {
	resp, err := t.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx responses)
// using exponential backoff while respecting context cancellation.
func (t *transport) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := t.backoff

	var lastErr error

	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := t.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == t.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// recordOutcome feeds the geocoder metrics for a single provider call.
func recordOutcome(start time.Time, err error) {
	obs.GeocodeDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		obs.GeocodeRequests.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrGeocodeNoResult):
		obs.GeocodeRequests.WithLabelValues("no_result").Inc()
	default:
		obs.GeocodeRequests.WithLabelValues("unavailable").Inc()
	}
}
