package geocoding

import (
	"context"
	"fmt"
	"order-ranking-service/internal/domain"
	"sync"
	"time"
)

// MockGeocoder is an in-memory Geocoder for tests. It counts calls per address.
type MockGeocoder struct {
	mu     sync.Mutex
	coords map[string]domain.Coordinates
	errs   map[string]error
	calls  map[string]int
	delay  time.Duration
}

func NewMockGeocoder(coords map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(coords))
	for k, v := range coords {
		m[k] = v
	}
	return &MockGeocoder{
		coords: m,
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// FailWith makes every lookup of address return err.
func (m *MockGeocoder) FailWith(address string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[address] = err
}

// SetDelay makes every lookup block for d (or until ctx is done).
func (m *MockGeocoder) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

func (m *MockGeocoder) Resolve(ctx context.Context, apiKey, address string) (domain.Coordinates, error) {
	m.mu.Lock()
	m.calls[address]++
	delay := m.delay
	c, ok := m.coords[address]
	err := m.errs[address]
	m.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.Coordinates{}, fmt.Errorf("%w: %w", domain.ErrGeocodeUnavailable, ctx.Err())
		case <-timer.C:
		}
	}

	if err != nil {
		return domain.Coordinates{}, err
	}
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", address, domain.ErrGeocodeNoResult)
	}
	return c, nil
}

// Calls returns how many times address was looked up.
func (m *MockGeocoder) Calls(address string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[address]
}

// TotalCalls returns the number of lookups across all addresses.
func (m *MockGeocoder) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}
