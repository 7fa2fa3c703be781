package services

import (
	"math"
	"order-ranking-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	moscow = domain.Coordinates{Lon: 37.6173, Lat: 55.7558}
	spb    = domain.Coordinates{Lon: 30.3159, Lat: 59.9391}
)

func TestDistanceKmSamePointIsZero(t *testing.T) {
	require.Equal(t, 0.0, DistanceKm(moscow, moscow))
	require.Equal(t, 0.0, DistanceKm(domain.Coordinates{}, domain.Coordinates{}))
}

func TestDistanceKmIsSymmetric(t *testing.T) {
	points := []domain.Coordinates{
		moscow,
		spb,
		{Lon: -73.9857, Lat: 40.7484},
		{Lon: 151.2093, Lat: -33.8688},
		{Lon: 0, Lat: 0},
	}
	for _, a := range points {
		for _, b := range points {
			require.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9, "%v <-> %v", a, b)
		}
	}
}

func TestDistanceKmMoscowToSaintPetersburg(t *testing.T) {
	require.InDelta(t, 635.0, DistanceKm(moscow, spb), 5.0)
}

// Feeding (lat, lon) where (lon, lat) is expected must give a visibly wrong
// answer, so a swap regression cannot slip through.
func TestDistanceKmAxisOrderMatters(t *testing.T) {
	swappedMoscow := domain.Coordinates{Lon: moscow.Lat, Lat: moscow.Lon}
	swappedSpb := domain.Coordinates{Lon: spb.Lat, Lat: spb.Lon}

	d := DistanceKm(swappedMoscow, swappedSpb)
	require.Greater(t, math.Abs(d-635.0), 100.0, "got %.1f km", d)
}

func TestDistanceKmOneDegreeOnEquator(t *testing.T) {
	d := DistanceKm(domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 1, Lat: 0})
	require.InDelta(t, 111.3195, d, 0.001)
}

func TestDistanceKmNearAntipodalFallsBack(t *testing.T) {
	d := DistanceKm(domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 179.5, Lat: 0.5})
	require.False(t, math.IsNaN(d))
	require.Greater(t, d, 19900.0)
	require.Less(t, d, 20040.0)
}

func TestHaversineMetersMatchesKnownDistance(t *testing.T) {
	m := haversineMeters(moscow.Lat, moscow.Lon, spb.Lat, spb.Lon)
	require.InDelta(t, 634_000.0, m, 5_000.0)
}
