// Package routing defines the route provider contract consumed by the
// dispatch session.
package routing

import (
	"context"
	"errors"
	"time"

	"github.com/resqride/resqride/core/model"
)

// ErrDegeneratePath is returned when a provider responds with a path too
// short to animate: fewer than two points or identical endpoints.
var ErrDegeneratePath = errors.New("routing: degenerate path")

// Route is the provider's answer for a start/end pair. The path is immutable
// once returned.
type Route struct {
	Path     model.Path
	Duration time.Duration
}

// Provider computes a route between two coordinates. Implementations must be
// treated as slow and fallible; the context bounds the call.
type Provider interface {
	Route(ctx context.Context, start, end model.Coordinate) (Route, error)
}

// Validate rejects routes the dispatch session cannot use.
func (r Route) Validate() error {
	if err := r.Path.Validate(); err != nil {
		return err
	}
	if r.Path.Degenerate() {
		return ErrDegeneratePath
	}
	return nil
}
