package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/resqride/resqride/core/metrics"
)

// PromSink records dispatch telemetry in Prometheus metrics.
type PromSink struct {
	sessions  *prometheus.CounterVec
	elapsed   *prometheus.HistogramVec
	positions prometheus.Counter
	eta       prometheus.Gauge
}

// NewPromSink registers dispatch metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_sessions_total",
		Help: "Total number of dispatch sessions by terminal outcome",
	}, []string{"outcome", "vehicle_id"})
	elapsed := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_session_seconds",
		Help:    "Wall time between booking and the terminal state",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	}, []string{"outcome"})
	positions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_position_updates_total",
		Help: "Total number of vehicle position updates",
	})
	eta := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_eta_seconds",
		Help: "Remaining travel time of the active session",
	})

	if err := reg.Register(sessions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sessions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(elapsed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			elapsed = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(positions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			positions = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(eta); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			eta = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{sessions: sessions, elapsed: elapsed, positions: positions, eta: eta}, nil
}

// RecordSessionOutcome increments the outcome counter and observes the
// session duration.
func (s *PromSink) RecordSessionOutcome(o coremetrics.SessionOutcome) error {
	s.sessions.WithLabelValues(string(o.Outcome), strconv.Itoa(o.VehicleID)).Inc()
	s.elapsed.WithLabelValues(string(o.Outcome)).Observe(o.Elapsed.Seconds())
	return nil
}

// RecordPositionSample counts the update and tracks the live ETA gauge.
func (s *PromSink) RecordPositionSample(p coremetrics.PositionSample) error {
	s.positions.Inc()
	s.eta.Set(p.Remaining.Seconds())
	return nil
}
