// Package locate resolves the requester's position, falling back to a fixed
// coordinate whenever the real source is unavailable or denied.
package locate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/resqride/resqride/core/locate"
	"github.com/resqride/resqride/core/logger"
	"github.com/resqride/resqride/core/model"
)

// Default fallback coordinate, in the Mira Road area north of Mumbai.
const (
	DefaultFallbackLat = 19.295
	DefaultFallbackLon = 72.854
)

// Config selects the locator and its fallback coordinate.
type Config struct {
	// Mode selects the locator: "static" or "http".
	Mode string `json:"mode"`
	// URL is the geolocation endpoint queried in http mode. It must answer
	// with a JSON object carrying "lat" and "lon" fields.
	URL string `json:"url"`
	// TimeoutMS bounds the http lookup.
	TimeoutMS int `json:"timeout_ms"`
	// FallbackLat and FallbackLon are used when the locator fails.
	FallbackLat float64 `json:"fallback_lat"`
	FallbackLon float64 `json:"fallback_lon"`
}

// SetDefaults applies sane defaults. The fallback coordinate defaults to the
// Mira Road area used throughout the simulation fixtures.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "static"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 3000
	}
	if c.FallbackLat == 0 && c.FallbackLon == 0 {
		c.FallbackLat = DefaultFallbackLat
		c.FallbackLon = DefaultFallbackLon
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Mode {
	case "static":
	case "http":
		if c.URL == "" {
			return fmt.Errorf("locate: url is required in http mode")
		}
	default:
		return fmt.Errorf("locate: unknown mode %q", c.Mode)
	}
	return (model.Coordinate{Lat: c.FallbackLat, Lon: c.FallbackLon}).Validate()
}

// Fallback returns the configured fallback coordinate.
func (c Config) Fallback() model.Coordinate {
	return model.Coordinate{Lat: c.FallbackLat, Lon: c.FallbackLon}
}

// HTTP queries a JSON geolocation endpoint.
type HTTP struct {
	url  string
	http *http.Client
}

// NewHTTP creates an HTTP locator from the configuration.
func NewHTTP(cfg Config) *HTTP {
	return &HTTP{
		url:  cfg.URL,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// Locate fetches the coordinate from the configured endpoint.
func (h *HTTP) Locate(ctx context.Context) (model.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("locate: create request: %w", err)
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("locate: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("locate: unexpected status %d", resp.StatusCode)
	}
	var c model.Coordinate
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return model.Coordinate{}, fmt.Errorf("locate: decode response: %w", err)
	}
	if err := c.Validate(); err != nil {
		return model.Coordinate{}, fmt.Errorf("locate: %w", err)
	}
	return c, nil
}

// fallbackLocator wraps a locator and recovers every failure to a fixed
// coordinate. Geolocation unavailability is never surfaced as an error.
type fallbackLocator struct {
	inner    locate.Locator
	fallback model.Coordinate
	log      logger.Logger
}

// WithFallback decorates l so any lookup failure yields the fallback
// coordinate instead of an error.
func WithFallback(l locate.Locator, fallback model.Coordinate, log logger.Logger) locate.Locator {
	return &fallbackLocator{inner: l, fallback: fallback, log: log}
}

func (f *fallbackLocator) Locate(ctx context.Context) (model.Coordinate, error) {
	c, err := f.inner.Locate(ctx)
	if err != nil {
		f.log.Warnf("geolocation unavailable, using fallback: %v", err)
		return f.fallback, nil
	}
	return c, nil
}

// New creates a locator from the configuration, always wrapped with the
// fallback coordinate.
func New(cfg Config, log logger.Logger) (locate.Locator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case "http":
		return WithFallback(NewHTTP(cfg), cfg.Fallback(), log), nil
	default:
		return locate.Static{Position: cfg.Fallback()}, nil
	}
}
