package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/resqride/resqride/core/model"
)

// Event is implemented by every dispatch session event.
type Event interface {
	// Type returns a stable name used to tag the event on outbound transports.
	Type() string
}

// BookingAccepted is published when the route provider returned a usable path
// and the session entered the enroute state.
type BookingAccepted struct {
	SessionID uuid.UUID     `json:"session_id"`
	VehicleID int           `json:"vehicle_id"`
	Path      model.Path    `json:"path"`
	Duration  time.Duration `json:"duration"`
}

// PositionUpdated is published on every tick with the vehicle's new position.
type PositionUpdated struct {
	SessionID uuid.UUID        `json:"session_id"`
	VehicleID int              `json:"vehicle_id"`
	Position  model.Coordinate `json:"position"`
}

// ETAUpdated is published on every tick with the remaining travel time.
type ETAUpdated struct {
	SessionID uuid.UUID     `json:"session_id"`
	Remaining time.Duration `json:"remaining"`
}

// Arrived is published exactly once when the vehicle reaches the requester.
type Arrived struct {
	SessionID uuid.UUID `json:"session_id"`
	VehicleID int       `json:"vehicle_id"`
}

// BookingFailed is published when the route provider fails or returns a
// degenerate path. The session is back in the idle state when it is observed.
type BookingFailed struct {
	SessionID uuid.UUID `json:"session_id"`
	VehicleID int       `json:"vehicle_id"`
	Reason    string    `json:"reason"`
}

// SessionCancelled is published when a booking is cancelled. No Arrived event
// follows a cancellation.
type SessionCancelled struct {
	SessionID uuid.UUID `json:"session_id"`
}

func (BookingAccepted) Type() string  { return "booking_accepted" }
func (PositionUpdated) Type() string  { return "position_updated" }
func (ETAUpdated) Type() string       { return "eta_updated" }
func (Arrived) Type() string          { return "arrived" }
func (BookingFailed) Type() string    { return "booking_failed" }
func (SessionCancelled) Type() string { return "session_cancelled" }
