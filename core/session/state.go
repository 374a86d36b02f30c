package session

import "errors"

// State is the lifecycle phase of a dispatch session.
type State int

const (
	// StateIdle means no booking is active.
	StateIdle State = iota
	// StateRouting means a booking was accepted and the route fetch is in flight.
	StateRouting
	// StateEnroute means the vehicle is moving along the path.
	StateEnroute
	// StateArrived is terminal: the vehicle reached the requester.
	StateArrived
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRouting:
		return "routing"
	case StateEnroute:
		return "enroute"
	case StateArrived:
		return "arrived"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON snapshots.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ErrInvalidState is returned when an operation is attempted in a state that
// does not permit it: Book while not idle, Cancel while idle. The session is
// left unchanged.
var ErrInvalidState = errors.New("session: operation not valid in current state")
