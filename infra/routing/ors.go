// Package routing provides the route provider implementations: an
// OpenRouteService HTTP client and an offline synthetic provider.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/resqride/resqride/core/logger"
	"github.com/resqride/resqride/core/model"
	corerouting "github.com/resqride/resqride/core/routing"
)

// ORSClient calls the OpenRouteService directions API.
type ORSClient struct {
	baseURL string
	apiKey  string
	profile string
	http    *http.Client
	log     logger.Logger
}

// NewORSClient creates a client from the configuration.
func NewORSClient(cfg Config, log logger.Logger) *ORSClient {
	return &ORSClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		profile: cfg.Profile,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		log:     log,
	}
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route requests a route between start and end. Coordinates are exchanged in
// GeoJSON [lon, lat] order and flipped back to the domain representation.
func (c *ORSClient) Route(ctx context.Context, start, end model.Coordinate) (corerouting.Route, error) {
	body, err := json.Marshal(orsRequest{Coordinates: [][2]float64{start.LonLat(), end.LonLat()}})
	if err != nil {
		return corerouting.Route{}, fmt.Errorf("routing: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return corerouting.Route{}, fmt.Errorf("routing: create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return corerouting.Route{}, fmt.Errorf("routing: request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Errorf("close response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return corerouting.Route{}, fmt.Errorf("routing: unexpected status %d: %s", resp.StatusCode, b)
	}

	var out orsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return corerouting.Route{}, fmt.Errorf("routing: decode response: %w", err)
	}
	if len(out.Features) == 0 {
		return corerouting.Route{}, fmt.Errorf("routing: response contains no features")
	}

	feat := out.Features[0]
	path := make(model.Path, len(feat.Geometry.Coordinates))
	for i, lonLat := range feat.Geometry.Coordinates {
		path[i] = model.Coordinate{Lat: lonLat[1], Lon: lonLat[0]}
	}
	return corerouting.Route{
		Path:     path,
		Duration: time.Duration(feat.Properties.Summary.Duration * float64(time.Second)),
	}, nil
}
