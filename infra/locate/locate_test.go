package locate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corelocate "github.com/resqride/resqride/core/locate"
	"github.com/resqride/resqride/core/model"
	"github.com/resqride/resqride/infra/logger"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "static", cfg.Mode)
	assert.Equal(t, model.Coordinate{Lat: 19.295, Lon: 72.854}, cfg.Fallback())
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Mode: "http"}
	cfg.SetDefaults()
	assert.Error(t, cfg.Validate(), "http mode requires a url")

	cfg = Config{Mode: "gps"}
	cfg.SetDefaults()
	assert.Error(t, cfg.Validate())

	cfg = Config{Mode: "static", FallbackLat: 99, FallbackLon: 0}
	assert.Error(t, cfg.Validate())
}

func TestHTTPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lat":19.1,"lon":72.9}`))
	}))
	defer srv.Close()

	cfg := Config{Mode: "http", URL: srv.URL}
	cfg.SetDefaults()
	c, err := NewHTTP(cfg).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Coordinate{Lat: 19.1, Lon: 72.9}, c)
}

func TestHTTPLocatorErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/deny":
			w.WriteHeader(http.StatusForbidden)
		case "/garbage":
			_, _ = w.Write([]byte(`not json`))
		case "/invalid":
			_, _ = w.Write([]byte(`{"lat":123,"lon":0}`))
		}
	}))
	defer srv.Close()

	for _, path := range []string{"/deny", "/garbage", "/invalid"} {
		cfg := Config{Mode: "http", URL: srv.URL + path}
		cfg.SetDefaults()
		_, err := NewHTTP(cfg).Locate(context.Background())
		assert.Error(t, err, path)
	}
}

func TestWithFallbackRecovers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := Config{Mode: "http", URL: srv.URL}
	cfg.SetDefaults()
	l := WithFallback(NewHTTP(cfg), cfg.Fallback(), logger.NopLogger{})
	c, err := l.Locate(context.Background())
	require.NoError(t, err, "denial must not surface as an error")
	assert.Equal(t, cfg.Fallback(), c)
}

func TestNewModeSwitch(t *testing.T) {
	l, err := New(Config{Mode: "static"}, logger.NopLogger{})
	require.NoError(t, err)
	if _, ok := l.(corelocate.Static); !ok {
		t.Fatalf("expected static locator, got %T", l)
	}
	c, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Coordinate{Lat: 19.295, Lon: 72.854}, c)

	_, err = New(Config{Mode: "http", URL: "http://localhost:1/geo"}, logger.NopLogger{})
	require.NoError(t, err)
}
