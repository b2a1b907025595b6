package dawg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dictionary loads. Queries are not instrumented.
type Metrics struct {
	loads    *prometheus.CounterVec
	duration prometheus.Histogram
	units    prometheus.Gauge
}

// NewMetrics creates the load metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: "dawg",
				Name:      "loads_total",
				Help:      "Dictionary loads by result.",
			},
			[]string{"result"}),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Subsystem: "dawg",
				Name:      "load_duration_seconds",
				Help:      "Time spent reading and decoding a dictionary.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			}),
		units: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Subsystem: "dawg",
				Name:      "loaded_units",
				Help:      "Units held by the most recently loaded dictionary.",
			}),
	}
	if reg != nil {
		reg.MustRegister(m.loads, m.duration, m.units)
	}
	return m
}

func (m *Metrics) observe(start time.Time, units int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.loads.WithLabelValues("error").Inc()
		return
	}
	m.loads.WithLabelValues("ok").Inc()
	m.duration.Observe(time.Since(start).Seconds())
	m.units.Set(float64(units))
}
