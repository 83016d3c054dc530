package decorate

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/graphdeco/metric"
)

// Pass status labels
const (
	passCompleted = "completed"
	passAborted   = "aborted"
)

// decoratorMetrics holds Prometheus metrics for decoration passes.
type decoratorMetrics struct {
	passes       *prometheus.CounterVec   // By status (completed/aborted)
	sections     *prometheus.CounterVec   // By outcome status
	passDuration *prometheus.HistogramVec // By status
}

// newDecoratorMetrics creates and registers decorator metrics with the
// provided registry. A nil registry disables metrics.
func newDecoratorMetrics(registry *metric.Registry) (*decoratorMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &decoratorMetrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphdeco",
			Subsystem: "decorator",
			Name:      "passes_total",
			Help:      "Total number of decoration passes",
		}, []string{"status"}),

		sections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphdeco",
			Subsystem: "decorator",
			Name:      "sections_total",
			Help:      "Total number of configuration sections processed, by outcome",
		}, []string{"status"}),

		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graphdeco",
			Subsystem: "decorator",
			Name:      "pass_duration_seconds",
			Help:      "Decoration pass duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		}, []string{"status"}),
	}

	if err := registry.Register("decorator", "passes_total", m.passes); err != nil {
		return nil, err
	}
	if err := registry.Register("decorator", "sections_total", m.sections); err != nil {
		return nil, err
	}
	if err := registry.Register("decorator", "pass_duration_seconds", m.passDuration); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *decoratorMetrics) recordPass(status string, seconds float64) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(status).Inc()
	m.passDuration.WithLabelValues(status).Observe(seconds)
}

func (m *decoratorMetrics) recordSection(status string) {
	if m == nil {
		return
	}
	m.sections.WithLabelValues(status).Inc()
}
