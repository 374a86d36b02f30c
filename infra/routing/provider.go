package routing

import (
	"fmt"

	"github.com/resqride/resqride/core/logger"
	corerouting "github.com/resqride/resqride/core/routing"
)

// New creates a route provider depending on cfg.Mode ("ors" or "synthetic").
func New(cfg Config, log logger.Logger) (corerouting.Provider, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case "ors":
		return NewORSClient(cfg, log), nil
	case "synthetic":
		return NewSynthetic(cfg.Synthetic), nil
	default:
		return nil, fmt.Errorf("routing: unknown mode %q", cfg.Mode)
	}
}
