package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Coordinate cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coordinate_cache_lookups_total",
		Help: "Coordinate cache lookups partitioned by result.",
	}, []string{"result"})

	// Calls made to the geocoding provider by outcome (ok, no_result, unavailable).
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_requests_total",
		Help: "Geocoding provider calls partitioned by outcome.",
	}, []string{"outcome"})

	GeocodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geocode_request_duration_seconds",
		Help:    "Latency of geocoding provider calls.",
		Buckets: prometheus.DefBuckets,
	})

	// Orders processed by ranking outcome (ranked, unresolved, invalid).
	RankedOrders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ranked_orders_total",
		Help: "Orders processed by the ranking service partitioned by outcome.",
	}, []string{"outcome"})

	// Candidate restaurants removed because their address could not be resolved.
	DroppedCandidates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranking_dropped_candidates_total",
		Help: "Candidate restaurants dropped after a failed address resolution.",
	})
)
