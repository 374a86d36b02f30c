package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  addr: ":8088"
fleet:
  count: 7
  seed: 42
  jitter_deg: 0.01
session:
  tick_interval_ms: 300
  arrival_threshold_m: 25
routing:
  mode: "ors"
  api_key: "key"
  profile: "driving-car"
locate:
  mode: "http"
  url: "http://localhost:9999/geo"
metrics:
  prometheus_enabled: true
mqtt:
  enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.addr", cfg.Server.Addr, ":8088"},
		{"fleet.count", cfg.Fleet.Count, 7},
		{"fleet.seed", cfg.Fleet.Seed, int64(42)},
		{"fleet.jitter_deg", cfg.Fleet.JitterDeg, 0.01},
		{"session.tick_interval_ms", cfg.Session.TickIntervalMS, 300},
		{"session.arrival_threshold_m", cfg.Session.ArrivalThresholdM, 25.0},
		{"session.route_timeout_ms default", cfg.Session.RouteTimeoutMS, 10000},
		{"routing.mode", cfg.Routing.Mode, "ors"},
		{"routing.api_key", cfg.Routing.APIKey, "key"},
		{"locate.mode", cfg.Locate.Mode, "http"},
		{"locate.fallback default", cfg.Locate.FallbackLat, 19.295},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_addr default", cfg.Metrics.PrometheusAddr, ":9090"},
		{"mqtt.enabled", cfg.MQTT.Enabled, false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"fleet":{"count":3},"routing":{"mode":"synthetic"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Fleet.Count != 3 {
		t.Errorf("fleet count = %d", cfg.Fleet.Count)
	}
	if cfg.Routing.Synthetic.Points != 20 {
		t.Errorf("synthetic points default = %d", cfg.Routing.Synthetic.Points)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `fleet:
  count: 5
`)
	t.Setenv("RQ_FLEET__COUNT", "9")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Fleet.Count != 9 {
		t.Errorf("env override ignored, count = %d", cfg.Fleet.Count)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `x = 1`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadValidationFailure(t *testing.T) {
	path := writeConfig(t, "config.yaml", `routing:
  mode: "ors"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error: ors mode without api key")
	}
}
