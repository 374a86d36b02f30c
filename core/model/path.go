package model

import "fmt"

// Path is an ordered sequence of coordinates describing a route. Index 0 is
// the vehicle start, the last index is the requester location. A path is
// immutable once returned by a route provider.
type Path []Coordinate

// Validate checks that the path is non-empty and every coordinate is valid.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("path is empty")
	}
	for i, c := range p {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("path[%d]: %w", i, err)
		}
	}
	return nil
}

// Degenerate reports whether the path is unusable for a dispatch session:
// fewer than two points, or identical endpoints with nothing in between.
func (p Path) Degenerate() bool {
	if len(p) < 2 {
		return true
	}
	if len(p) == 2 && p[0] == p[1] {
		return true
	}
	return false
}

// Start returns the first coordinate of the path.
func (p Path) Start() Coordinate { return p[0] }

// End returns the last coordinate of the path.
func (p Path) End() Coordinate { return p[len(p)-1] }
