// Package model defines the domain types shared across the dispatch service.
package model

import "fmt"

// Coordinate is a WGS84 position. JSON field names follow the wire format
// used by the gateway and the geolocation endpoint.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate lies within valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range", c.Lon)
	}
	return nil
}

// LonLat returns the coordinate in longitude-first order, the convention
// used by GeoJSON routing APIs.
func (c Coordinate) LonLat() [2]float64 { return [2]float64{c.Lon, c.Lat} }
