package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "productindex"

// Remote search service and pipeline metrics.
var (
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Total number of requests to the search service",
		},
		[]string{"operation", "status"},
	)

	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Search service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	RemoteErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_errors_total",
			Help:      "Total search service errors",
		},
		[]string{"operation", "error_type"}, // api_error, transport, decode
	)

	SyncFilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_files_total",
			Help:      "Files submitted during directory sync",
		},
		[]string{"status"}, // uploaded, failed
	)

	SettleWaitSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "corpus_settle_wait_seconds",
			Help:      "Time spent waiting for a deleted corpus to disappear",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120},
		},
		[]string{"strategy"},
	)
)

var registerOnce sync.Once

// Register registers all Prometheus metrics on the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RemoteRequestsTotal,
			RemoteRequestDuration,
			RemoteErrorsTotal,
			SyncFilesTotal,
			SettleWaitSeconds,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
