package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	modelInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "model_invocations_total", Help: "model invocations by id and outcome"},
		[]string{"model_id", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsToUri,
		totalHttpRequests,
		modelInvocations,
	)
}

// ObserveInvocation records one dispatch outcome. outcome is "ok",
// "not_found", or "error".
func ObserveInvocation(modelID, outcome string) {
	modelInvocations.WithLabelValues(modelID, outcome).Inc()
}
