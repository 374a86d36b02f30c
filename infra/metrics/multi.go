package metrics

import coremetrics "github.com/resqride/resqride/core/metrics"

// MultiSink fans dispatch telemetry out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSessionOutcome forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSessionOutcome(o coremetrics.SessionOutcome) error {
	for _, s := range m.Sinks {
		if err := s.RecordSessionOutcome(o); err != nil {
			return err
		}
	}
	return nil
}

// RecordPositionSample forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPositionSample(p coremetrics.PositionSample) error {
	for _, s := range m.Sinks {
		if err := s.RecordPositionSample(p); err != nil {
			return err
		}
	}
	return nil
}
