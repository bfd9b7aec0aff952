package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction strategies reported by CriteriaExtractions.
const (
	StrategyEmpty     = "empty"
	StrategyHeuristic = "heuristic"
	StrategyModel     = "model"
	StrategyFallback  = "fallback"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buscar_requests_total",
			Help: "Total number of natural-language search requests",
		},
		[]string{"status"},
	)

	SearchRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "buscar_request_duration_seconds",
			Help:    "Natural-language search duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	CriteriaExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "criteria_extractions_total",
			Help: "Criteria extractions by strategy (empty, heuristic, model, fallback)",
		},
		[]string{"strategy"},
	)

	UpstreamPageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listings_page_fetch_duration_seconds",
			Help:    "Upstream catalog page fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"status"},
	)

	ListingsMatched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "listings_matched",
			Help:    "Number of listings matching the extracted criteria per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
