package routing

import (
	"context"
	"sync"
	"time"

	"github.com/resqride/resqride/core/geo"
	"github.com/resqride/resqride/core/model"
	corerouting "github.com/resqride/resqride/core/routing"
)

// Synthetic generates straight-line routes without any network dependency. It
// backs the "synthetic" provider mode used by local runs, the simulate
// command and tests.
type Synthetic struct {
	points int
	speed  float64 // meters per second

	mu      sync.Mutex
	failErr error
}

// NewSynthetic creates a synthetic provider from the configuration.
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	return &Synthetic{
		points: cfg.Points,
		speed:  cfg.SpeedKMH / 3.6,
	}
}

// FailWith makes every subsequent Route call return err. Passing nil restores
// normal operation.
func (s *Synthetic) FailWith(err error) {
	s.mu.Lock()
	s.failErr = err
	s.mu.Unlock()
}

// Route interpolates a straight path of the configured point count between
// start and end, with a duration derived from the configured speed.
func (s *Synthetic) Route(ctx context.Context, start, end model.Coordinate) (corerouting.Route, error) {
	if err := ctx.Err(); err != nil {
		return corerouting.Route{}, err
	}
	s.mu.Lock()
	failErr := s.failErr
	s.mu.Unlock()
	if failErr != nil {
		return corerouting.Route{}, failErr
	}

	path := make(model.Path, s.points)
	for i := range path {
		f := float64(i) / float64(s.points-1)
		path[i] = model.Coordinate{
			Lat: start.Lat + (end.Lat-start.Lat)*f,
			Lon: start.Lon + (end.Lon-start.Lon)*f,
		}
	}
	dist := geo.HaversineMeters(start, end)
	return corerouting.Route{
		Path:     path,
		Duration: time.Duration(dist / s.speed * float64(time.Second)),
	}, nil
}
