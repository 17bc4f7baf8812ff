// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LLMCallDuration tracks completion call duration per call site.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "LLM completion call duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"status"},
	)

	// LLMCallsTotal tracks total completion calls.
	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_calls_total",
			Help: "Total LLM completion calls",
		},
		[]string{"status"},
	)

	// LLMRetriesTotal tracks retried completion attempts.
	LLMRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "llm_retries_total",
			Help: "Total retried LLM completion attempts",
		},
	)

	// FlightQueriesTotal tracks flight provider queries per currency.
	FlightQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_queries_total",
			Help: "Total flight provider queries",
		},
		[]string{"currency", "status"},
	)

	// IntentsTotal tracks classified chat intents.
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_intents_total",
			Help: "Total classified chat intents",
		},
		[]string{"intent"},
	)

	// SessionsActive tracks sessions currently held in memory.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of chat sessions held in memory",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMCall records metrics for a completion call.
func RecordLLMCall(status string, duration float64) {
	LLMCallDuration.WithLabelValues(status).Observe(duration)
	LLMCallsTotal.WithLabelValues(status).Inc()
}

// RecordFlightQuery records metrics for a single-currency flight query.
func RecordFlightQuery(currency, status string) {
	FlightQueriesTotal.WithLabelValues(currency, status).Inc()
}
