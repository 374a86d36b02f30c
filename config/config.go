package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/resqride/resqride/core/metrics"
	"github.com/resqride/resqride/core/session"
	"github.com/resqride/resqride/infra/locate"
	"github.com/resqride/resqride/infra/mqtt"
	"github.com/resqride/resqride/infra/routing"
)

// Config is the root configuration of the dispatch service.
type Config struct {
	Server  ServerConfig   `json:"server"`
	Fleet   FleetConfig    `json:"fleet"`
	Session session.Config `json:"session"`
	Routing routing.Config `json:"routing"`
	Locate  locate.Config  `json:"locate"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Fleet.SetDefaults()
	c.Session.SetDefaults()
	c.Routing.SetDefaults()
	c.Locate.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
}

// ServerConfig addresses the gateway HTTP server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// FleetConfig parameterizes fleet generation at service start.
type FleetConfig struct {
	// Count is the number of vehicles generated around the requester.
	Count int `json:"count"`
	// Seed seeds the random source; zero selects a time-based seed.
	Seed int64 `json:"seed"`
	// JitterDeg bounds the random offset per axis in degrees.
	JitterDeg float64 `json:"jitter_deg"`
}

// SetDefaults applies sane defaults.
func (c *FleetConfig) SetDefaults() {
	if c.Count == 0 {
		c.Count = 5
	}
	if c.JitterDeg == 0 {
		c.JitterDeg = 0.005
	}
}

// Validate checks mandatory fields.
func (c FleetConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("fleet: count must not be negative")
	}
	if c.JitterDeg <= 0 || c.JitterDeg > 1 {
		return fmt.Errorf("fleet: jitter_deg must be in (0,1]")
	}
	return nil
}

// Load reads the configuration from a YAML or JSON file, applying optional
// environment overrides with the RQ_ prefix ("__" maps to ".").
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("RQ_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rq_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	if err := cfg.Fleet.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Routing.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Locate.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
