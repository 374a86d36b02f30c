package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/resqride/resqride/core/model"
)

// Outcome describes how a dispatch session ended.
type Outcome string

const (
	OutcomeArrived   Outcome = "arrived"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// SessionOutcome is recorded once per booking when it reaches a terminal state.
type SessionOutcome struct {
	SessionID uuid.UUID
	VehicleID int
	Outcome   Outcome
	// Reason carries the failure cause for OutcomeFailed, empty otherwise.
	Reason string
	// Elapsed is the wall time between booking and the terminal state.
	Elapsed time.Duration
	Time    time.Time
}

// PositionSample is recorded on every session tick.
type PositionSample struct {
	SessionID uuid.UUID
	VehicleID int
	Position  model.Coordinate
	Remaining time.Duration
	Cursor    int
	Time      time.Time
}

// Sink records dispatch telemetry for observability purposes.
type Sink interface {
	RecordSessionOutcome(SessionOutcome) error
	RecordPositionSample(PositionSample) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSessionOutcome(SessionOutcome) error { return nil }
func (NopSink) RecordPositionSample(PositionSample) error { return nil }
