// Package fleet generates the simulated ambulances offered to a requester.
package fleet

import (
	"fmt"
	"math/rand"

	"github.com/resqride/resqride/core/model"
)

// DefaultCount is the number of vehicles generated when none is requested.
const DefaultCount = 5

// DefaultJitterDeg bounds the random offset applied per axis, roughly 550 m
// at the fallback latitude.
const DefaultJitterDeg = 0.005

var categories = []model.Category{
	model.CategoryBasic,
	model.CategoryBike,
	model.CategoryICU,
	model.CategoryNeonatal,
	model.CategoryALS,
}

// Generator produces vehicles scattered around a center coordinate. It owns a
// seeded random source so generation is deterministic under a fixed seed.
type Generator struct {
	rng    *rand.Rand
	jitter float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithJitterDeg overrides the per-axis offset bound in degrees.
func WithJitterDeg(deg float64) Option {
	return func(g *Generator) {
		if deg > 0 {
			g.jitter = deg
		}
	}
}

// NewGenerator creates a Generator seeded with the given value.
func NewGenerator(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		jitter: DefaultJitterDeg,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate creates count vehicles around center. IDs are assigned
// sequentially starting at 1 and are unique within one call. A non-positive
// count falls back to DefaultCount.
func (g *Generator) Generate(center model.Coordinate, count int) []model.Vehicle {
	if count <= 0 {
		count = DefaultCount
	}
	vs := make([]model.Vehicle, count)
	for i := range vs {
		vs[i] = model.Vehicle{
			ID:   i + 1,
			Name: fmt.Sprintf("Unit %02d", i+1),
			Position: model.Coordinate{
				Lat: center.Lat + g.offset(),
				Lon: center.Lon + g.offset(),
			},
			Category: categories[g.rng.Intn(len(categories))],
		}
	}
	return vs
}

// offset returns a uniform random value in [-jitter, jitter].
func (g *Generator) offset() float64 {
	return (g.rng.Float64()*2 - 1) * g.jitter
}
