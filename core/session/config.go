package session

import (
	"fmt"
	"time"
)

// Config defines the tunables of the dispatch session. Tick cadence and
// arrival threshold are configuration constants and stay fixed for the life
// of one session.
type Config struct {
	// TickIntervalMS is the cadence of position updates in milliseconds.
	TickIntervalMS int `json:"tick_interval_ms"`
	// ArrivalThresholdM is the distance in meters below which the vehicle is
	// considered to have reached the requester.
	ArrivalThresholdM float64 `json:"arrival_threshold_m"`
	// RouteTimeoutMS bounds the route provider call.
	RouteTimeoutMS int `json:"route_timeout_ms"`
	// DistanceWeightedETA switches the remaining-time estimate from a linear
	// share of the provider duration to a share weighted by remaining path
	// distance.
	DistanceWeightedETA bool `json:"distance_weighted_eta"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TickIntervalMS == 0 {
		c.TickIntervalMS = 500
	}
	if c.ArrivalThresholdM == 0 {
		c.ArrivalThresholdM = 30
	}
	if c.RouteTimeoutMS == 0 {
		c.RouteTimeoutMS = 10000
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.TickIntervalMS <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive")
	}
	if c.ArrivalThresholdM < 0 {
		return fmt.Errorf("arrival_threshold_m must not be negative")
	}
	if c.RouteTimeoutMS <= 0 {
		return fmt.Errorf("route_timeout_ms must be positive")
	}
	return nil
}

// TickInterval returns the tick cadence as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// RouteTimeout returns the route provider deadline as a duration.
func (c Config) RouteTimeout() time.Duration {
	return time.Duration(c.RouteTimeoutMS) * time.Millisecond
}
