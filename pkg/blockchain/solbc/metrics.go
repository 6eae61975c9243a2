// pkg/blockchain/solbc/metrics.go
package solbc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-attempt RPC statistics.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics создает метрики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dumpfun_rpc_requests_total",
				Help: "Total number of RPC attempts by method and outcome",
			},
			[]string{"method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dumpfun_rpc_latency_seconds",
				Help:    "Latency of a single RPC attempt",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"method", "endpoint"},
		),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.latency} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observe записывает результат одной попытки; nil Metrics ничего не делает
func (m *Metrics) observe(method, endpoint string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	switch {
	case err == nil:
	case IsAccountNotFoundError(err):
		status = "not_found"
	case IsRetryableError(err):
		status = "retryable"
	default:
		status = "failed"
	}

	m.requests.WithLabelValues(method, status).Inc()
	m.latency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
