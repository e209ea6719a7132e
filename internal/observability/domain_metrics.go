package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	intentMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spendql_intent_matches_total",
			Help: "Total number of questions resolved by a fixed intent rule.",
		},
		[]string{"rule"},
	)
	fallbackRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spendql_fallback_requests_total",
			Help: "Total number of questions handed to the model fallback.",
		},
	)
	fallbackFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spendql_fallback_failures_total",
			Help: "Total number of failed model fallback calls.",
		},
	)
	fallbackLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spendql_fallback_latency_ms",
			Help:    "Model fallback round-trip latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 20000},
		},
	)
	queryExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spendql_query_executions_total",
			Help: "Total number of resolved queries sent to the database.",
		},
		[]string{"status"},
	)
	queryDurationMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spendql_query_duration_ms",
			Help:    "Database execution latency in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2000, 5000},
		},
	)
	emptyQuestionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spendql_empty_questions_total",
			Help: "Total number of requests rejected for an empty question.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		intentMatchesTotal,
		fallbackRequestsTotal,
		fallbackFailuresTotal,
		fallbackLatencyMs,
		queryExecutionsTotal,
		queryDurationMs,
		emptyQuestionsTotal,
	)
}

func ObserveIntentMatch(rule string) {
	intentMatchesTotal.WithLabelValues(rule).Inc()
}

func ObserveFallback(elapsed time.Duration, err error) {
	fallbackRequestsTotal.Inc()
	if err != nil {
		fallbackFailuresTotal.Inc()
	}
	fallbackLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func ObserveQueryExecution(elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	queryExecutionsTotal.WithLabelValues(status).Inc()
	queryDurationMs.Observe(float64(elapsed.Milliseconds()))
}

func ObserveEmptyQuestion() {
	emptyQuestionsTotal.Inc()
}
