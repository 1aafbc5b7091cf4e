// Package metrics содержит Prometheus-метрики сервиса рекомендаций.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by data source",
		},
		[]string{"data_source"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of the recommendation pipeline in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"data_source"},
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of places returned per recommendation request",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
		},
	)

	PipelineDegradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_degradations_total",
			Help: "Total number of degraded pipeline stages",
		},
		[]string{"stage"},
	)

	CatalogPlaces = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_places",
			Help: "Number of places in the loaded catalog",
		},
		[]string{"source"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_requests_total",
			Help: "Response cache lookups by result (hit, miss, error, rejected)",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)
