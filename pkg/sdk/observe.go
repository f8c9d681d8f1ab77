package productindex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "productindex",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "productindex",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	for _, op := range operations {
		m.operations.WithLabelValues(string(op), "ok")
		m.operations.WithLabelValues(string(op), "error")
		m.duration.WithLabelValues(string(op))
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("productindex: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("productindex: register metric: %w", err)
	}
	return nil
}

// operation names a Client method in metrics and logs.
type operation string

const (
	opOpen   operation = "open"
	opSync   operation = "sync"
	opQuery  operation = "query"
	opDelete operation = "delete"
)

// operations are the label values pre-created on registration.
var operations = []operation{opOpen, opSync, opQuery, opDelete}

// observer provides logging and metrics for SDK operations.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// observe records one call of op against corpusKey (empty when no corpus is bound).
func (o *observer) observe(op operation, corpusKey string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(string(op), status).Inc()
		o.metrics.duration.WithLabelValues(string(op)).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", string(op), "duration", dur}
	if corpusKey != "" {
		attrs = append(attrs, "corpus_key", corpusKey)
	}
	switch {
	case err != nil:
		o.logger.Warn("productindex operation failed", append(attrs, "error", err)...)
	case op == opOpen || op == opDelete:
		// Corpus state changed on the remote side.
		o.logger.Info("productindex corpus updated", attrs...)
	default:
		o.logger.Debug("productindex operation completed", attrs...)
	}
}
