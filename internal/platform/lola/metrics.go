package lola

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call outcomes recorded in metrics and spans.
const (
	OutcomeData    = "data"
	OutcomeError   = "error"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors for query calls.
type Metrics struct {
	duration *prometheus.HistogramVec
}

// NewMetrics registers the query collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lola_query_duration_seconds",
				Help:    "Duration of remote query executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "outcome"},
		),
	}
}

func (m *Metrics) observe(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}
