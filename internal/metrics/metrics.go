// Package metrics exposes run results as Prometheus collectors. A run is a
// short-lived process, so the registry is written to a node_exporter
// textfile instead of being scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "dormpower_"

	resultSuccess = "success"
	resultError   = "error"
)

// Metrics bundles run metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Balance       *prometheus.GaugeVec
	Runs          *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	RecordsStored prometheus.Counter
	WindowSize    prometheus.Gauge
	LastSuccess   prometheus.Gauge
	RunDuration   prometheus.Histogram
}

// New constructs and registers metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Balance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "balance_kwh",
				Help: "Remaining power by room",
			},
			[]string{"room"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "runs_total",
				Help: "Monitor runs by result",
			},
			[]string{"result"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notifications_total",
				Help: "Notification attempts by channel and result",
			},
			[]string{"channel", "result"},
		),
		RecordsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "records_stored_total",
			Help: "Readings appended to the monthly dataset",
		}),
		WindowSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "rolling_window_records",
			Help: "Readings in the rolling display window",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "run_duration_seconds",
			Help:    "Run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.Balance,
		m.Runs,
		m.Notifications,
		m.RecordsStored,
		m.WindowSize,
		m.LastSuccess,
		m.RunDuration,
	)
	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveBalances sets both room gauges.
func (m *Metrics) ObserveBalances(lighting, airConditioning float64) {
	m.Balance.WithLabelValues("lighting").Set(lighting)
	m.Balance.WithLabelValues("air_conditioning").Set(airConditioning)
}

// ObserveNotification counts one delivery attempt.
func (m *Metrics) ObserveNotification(channel string, err error) {
	m.Notifications.WithLabelValues(channel, result(err)).Inc()
}

// ObserveRun records the outcome and duration of a run.
func (m *Metrics) ObserveRun(start time.Time, err error) {
	m.RunDuration.Observe(time.Since(start).Seconds())
	m.Runs.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.LastSuccess.SetToCurrentTime()
	}
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
