package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resqride/resqride/core/geo"
	"github.com/resqride/resqride/core/model"
	"github.com/resqride/resqride/infra/logger"
)

var (
	start = model.Coordinate{Lat: 19.2990, Lon: 72.8590}
	end   = model.Coordinate{Lat: 19.2950, Lon: 72.8540}
)

func orsTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/driving-car/geojson", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var req struct {
			Coordinates [][2]float64 `json:"coordinates"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Coordinates, 2)
		// GeoJSON order: lon first.
		assert.Equal(t, start.Lon, req.Coordinates[0][0])
		assert.Equal(t, start.Lat, req.Coordinates[0][1])

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

const orsBody = `{"features":[{"geometry":{"coordinates":[[72.8590,19.2990],[72.8565,19.2970],[72.8540,19.2950]]},"properties":{"summary":{"duration":120.5}}}]}`

func orsClient(t *testing.T, url string) *ORSClient {
	cfg := Config{Mode: "ors", BaseURL: url, APIKey: "test-key"}
	cfg.SetDefaults()
	return NewORSClient(cfg, logger.NopLogger{})
}

func TestORSClientSuccess(t *testing.T) {
	srv := orsTestServer(t, http.StatusOK, orsBody)
	defer srv.Close()

	route, err := orsClient(t, srv.URL).Route(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, route.Path, 3)
	// Coordinates flipped back to lat/lon.
	assert.Equal(t, start, route.Path.Start())
	assert.Equal(t, end, route.Path.End())
	assert.Equal(t, time.Duration(120.5*float64(time.Second)), route.Duration)
}

func TestORSClientNon200(t *testing.T) {
	srv := orsTestServer(t, http.StatusForbidden, `{"error":"quota exceeded"}`)
	defer srv.Close()

	_, err := orsClient(t, srv.URL).Route(context.Background(), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestORSClientMalformedBody(t *testing.T) {
	srv := orsTestServer(t, http.StatusOK, `{not json`)
	defer srv.Close()

	_, err := orsClient(t, srv.URL).Route(context.Background(), start, end)
	assert.Error(t, err)
}

func TestORSClientNoFeatures(t *testing.T) {
	srv := orsTestServer(t, http.StatusOK, `{"features":[]}`)
	defer srv.Close()

	_, err := orsClient(t, srv.URL).Route(context.Background(), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no features")
}

func TestORSClientContextCancel(t *testing.T) {
	srv := orsTestServer(t, http.StatusOK, orsBody)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := orsClient(t, srv.URL).Route(ctx, start, end)
	assert.Error(t, err)
}

func TestSyntheticRoute(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{Points: 10, SpeedKMH: 36})
	route, err := s.Route(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, route.Path, 10)
	assert.Equal(t, start, route.Path.Start())
	assert.Equal(t, end, route.Path.End())

	// 36 km/h is 10 m/s, so the duration is a tenth of the distance.
	dist := geo.HaversineMeters(start, end)
	assert.InDelta(t, dist/10, route.Duration.Seconds(), 0.01)
	assert.NoError(t, route.Validate())
}

func TestSyntheticFailWith(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{Points: 5, SpeedKMH: 30})
	s.FailWith(errors.New("network timeout"))
	_, err := s.Route(context.Background(), start, end)
	require.EqualError(t, err, "network timeout")

	s.FailWith(nil)
	_, err = s.Route(context.Background(), start, end)
	assert.NoError(t, err)
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "synthetic", cfg.Mode)
	assert.Equal(t, "driving-car", cfg.Profile)
	assert.Equal(t, 20, cfg.Synthetic.Points)
	assert.NoError(t, cfg.Validate())

	cfg = Config{Mode: "ors"}
	cfg.SetDefaults()
	assert.Error(t, cfg.Validate(), "ors mode requires an api key")

	cfg = Config{Mode: "teleport"}
	assert.Error(t, cfg.Validate())
}

func TestNewModeSwitch(t *testing.T) {
	p, err := New(Config{Mode: "synthetic"}, logger.NopLogger{})
	require.NoError(t, err)
	if _, ok := p.(*Synthetic); !ok {
		t.Fatalf("expected synthetic provider, got %T", p)
	}

	p, err = New(Config{Mode: "ors", APIKey: "k"}, logger.NopLogger{})
	require.NoError(t, err)
	if _, ok := p.(*ORSClient); !ok {
		t.Fatalf("expected ORS client, got %T", p)
	}

	_, err = New(Config{Mode: "nope"}, logger.NopLogger{})
	assert.Error(t, err)
}
