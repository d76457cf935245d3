package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for chat requests.
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
)

// Metrics holds the relay's collectors and the registry they are registered on.
type Metrics struct {
	Registry *prometheus.Registry

	chatRequests     *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	upstreamInFlight prometheus.Gauge
}

// New creates a Metrics value backed by its own registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timelinebot_chat_requests_total",
				Help: "Number of /chat requests by outcome",
			},
			[]string{"outcome"},
		),
		upstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "timelinebot_upstream_duration_seconds",
				Help:    "Duration of calls to the model server",
				Buckets: prometheus.DefBuckets,
			},
		),
		upstreamInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "timelinebot_upstream_in_flight",
				Help: "Calls to the model server currently waiting for a reply",
			},
		),
	}
	m.Registry.MustRegister(m.chatRequests, m.upstreamDuration, m.upstreamInFlight)
	return m
}

// ObserveChat counts one finished /chat request. Safe on a nil receiver.
func (m *Metrics) ObserveChat(outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(outcome).Inc()
}

// TrackUpstream marks an upstream call as started and returns the function that
// marks it as done. Safe on a nil receiver.
func (m *Metrics) TrackUpstream() func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	m.upstreamInFlight.Inc()
	return func() {
		m.upstreamInFlight.Dec()
		m.upstreamDuration.Observe(time.Since(start).Seconds())
	}
}
