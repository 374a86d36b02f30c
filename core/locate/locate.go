// Package locate defines the geolocation provider contract. A locator answers
// with the requester's current coordinate; consumers must never block
// indefinitely waiting for one.
package locate

import (
	"context"

	"github.com/resqride/resqride/core/model"
)

// Locator resolves the requester's current position.
type Locator interface {
	Locate(ctx context.Context) (model.Coordinate, error)
}

// Static always returns a fixed coordinate. It backs the fallback path when a
// real locator is unavailable or denied.
type Static struct {
	Position model.Coordinate
}

// Locate returns the configured coordinate.
func (s Static) Locate(context.Context) (model.Coordinate, error) {
	return s.Position, nil
}
