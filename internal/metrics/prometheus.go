package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_records_classified_total",
			Help: "Feedback records classified, by product area and issue type",
		},
		[]string{"product_area", "issue_type"},
	)

	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedback_corpus_generation_seconds",
			Help:    "Time spent generating a synthetic corpus",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	SessionCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_session_cache_total",
			Help: "Session cache lookups by result (hit, miss, expired, error)",
		},
		[]string{"result"},
	)

	LiveFetch = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_live_fetch_total",
			Help: "Live source fetches by result (records, empty)",
		},
		[]string{"result"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_http_requests_total",
			Help: "HTTP requests by path and status code",
		},
		[]string{"path", "status"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry. Safe to call twice.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RecordsClassified)
		prometheus.MustRegister(GenerationDuration)
		prometheus.MustRegister(SessionCache)
		prometheus.MustRegister(LiveFetch)
		prometheus.MustRegister(HTTPRequests)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
