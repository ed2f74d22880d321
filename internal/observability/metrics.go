package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the service.
type Metrics struct {
	ChatRequests         *prometheus.CounterVec // labels: source={backend,local}
	WeatherLookups       *prometheus.CounterVec // labels: outcome={live,fallback}
	NotificationsEmitted *prometheus.CounterVec // labels: kind={weather_alert,recommendation}
	ScannerCycles        prometheus.Counter
	ScannerUserErrors    prometheus.Counter
	ActiveSessions       prometheus.Gauge
	SessionsEvicted      prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ChatRequests,
		m.WeatherLookups,
		m.NotificationsEmitted,
		m.ScannerCycles,
		m.ScannerUserErrors,
		m.ActiveSessions,
		m.SessionsEvicted,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry,
// avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_companion",
			Name:      "chat_requests_total",
			Help:      "Chat requests handled, by reply source.",
		}, []string{"source"}),
		WeatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_companion",
			Name:      "weather_lookups_total",
			Help:      "Weather lookups served, live versus fallback reading.",
		}, []string{"outcome"}),
		NotificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_companion",
			Name:      "notifications_emitted_total",
			Help:      "Notifications produced by the rule engine, by kind.",
		}, []string{"kind"}),
		ScannerCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travel_companion",
			Name:      "scanner_cycles_total",
			Help:      "Completed background scan cycles.",
		}),
		ScannerUserErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travel_companion",
			Name:      "scanner_user_errors_total",
			Help:      "Per-user failures isolated during scan cycles.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "travel_companion",
			Name:      "active_sessions",
			Help:      "Sessions currently held in the store.",
		}),
		SessionsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travel_companion",
			Name:      "sessions_evicted_total",
			Help:      "Stale sessions removed by the eviction pass.",
		}),
	}
}
