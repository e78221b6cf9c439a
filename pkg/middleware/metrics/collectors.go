// middleware/metrics/collectors.go
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

	dispatchNoHandler = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_no_handler_total", Help: "requests whose predicate values matched no handler"},
		[]string{"model", "method", "view"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsToUri,
		totalHttpRequests,
		dispatchNoHandler,
	)
}

// NoHandler records a dispatch miss for a mounted model.
func NoHandler(model, method, view string) {
	dispatchNoHandler.WithLabelValues(model, method, view).Inc()
}
