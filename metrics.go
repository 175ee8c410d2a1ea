package qbell

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "qbell"

const (
	statusOK          = "ok"
	statusUnavailable = "backend_unavailable"
	statusFailed      = "execution_failure"
)

/*
Metrics holds the collectors for measurement runs. The collectors are
safe for concurrent use, so one Metrics is shared by every request.
*/
type Metrics struct {
	RunsTotal       *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
	ShotsTotal      *prometheus.CounterVec
	DroppedOutcomes *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. Passing nil registers
// with the prometheus default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "measurement",
				Name:      "runs_total",
				Help:      "Measurement runs by backend and status",
			},
			[]string{"backend", "status"},
		),
		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "measurement",
				Name:      "run_duration_seconds",
				Help:      "Wall time of a measurement run including backend resolution",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1, 0.5, 1},
			},
			[]string{"backend"},
		),
		ShotsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "measurement",
				Name:      "shots_total",
				Help:      "Shots executed by backend",
			},
			[]string{"backend"},
		),
		DroppedOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "measurement",
				Name:      "dropped_outcomes_total",
				Help:      "Shots whose outcome was left out of the formatted payload",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) recordRun(backend string, startTime time.Time, shots int, status string) {
	if m == nil {
		return
	}

	m.RunsTotal.WithLabelValues(backend, status).Inc()
	m.RunDuration.WithLabelValues(backend).Observe(time.Since(startTime).Seconds())

	if status == statusOK {
		m.ShotsTotal.WithLabelValues(backend).Add(float64(shots))
	}
}

func (m *Metrics) recordDropped(outcome string, n int) {
	if m == nil {
		return
	}

	m.DroppedOutcomes.WithLabelValues(outcome).Add(float64(n))
}
