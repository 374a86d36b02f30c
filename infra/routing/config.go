package routing

import "fmt"

// Config selects and parameterizes the route provider.
type Config struct {
	// Mode selects the provider implementation: "ors" or "synthetic".
	Mode string `json:"mode"`
	// BaseURL is the OpenRouteService endpoint root.
	BaseURL string `json:"base_url"`
	// APIKey is sent in the Authorization header.
	APIKey string `json:"api_key"`
	// Profile is the routing profile, e.g. "driving-car".
	Profile string `json:"profile"`
	// TimeoutMS bounds a single HTTP request.
	TimeoutMS int `json:"timeout_ms"`
	// Synthetic holds the parameters of the synthetic provider.
	Synthetic SyntheticConfig `json:"synthetic"`
}

// SyntheticConfig parameterizes the offline provider used for local runs and
// the simulate command.
type SyntheticConfig struct {
	// Points is the number of coordinates in a generated path.
	Points int `json:"points"`
	// SpeedKMH is the assumed travel speed used to derive the duration.
	SpeedKMH float64 `json:"speed_kmh"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "synthetic"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openrouteservice.org"
	}
	if c.Profile == "" {
		c.Profile = "driving-car"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 10000
	}
	if c.Synthetic.Points == 0 {
		c.Synthetic.Points = 20
	}
	if c.Synthetic.SpeedKMH == 0 {
		c.Synthetic.SpeedKMH = 30
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Mode {
	case "ors":
		if c.APIKey == "" {
			return fmt.Errorf("routing: api_key is required in ors mode")
		}
	case "synthetic":
		if c.Synthetic.Points < 2 {
			return fmt.Errorf("routing: synthetic points must be at least 2")
		}
		if c.Synthetic.SpeedKMH <= 0 {
			return fmt.Errorf("routing: synthetic speed must be positive")
		}
	default:
		return fmt.Errorf("routing: unknown mode %q", c.Mode)
	}
	return nil
}
