// Package geo provides the great-circle math used by the dispatch session:
// haversine distances, per-segment path lengths and cumulative distance
// profiles for distance-weighted ETA computation.
package geo

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/resqride/resqride/core/model"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// SegmentLengths returns the haversine length of each consecutive segment of
// the path. A path with fewer than two points has no segments.
func SegmentLengths(p model.Path) []float64 {
	if len(p) < 2 {
		return nil
	}
	segs := make([]float64, len(p)-1)
	for i := 1; i < len(p); i++ {
		segs[i-1] = HaversineMeters(p[i-1], p[i])
	}
	return segs
}

// CumulativeMeters returns the running distance from the start of the path to
// each point. The result has the same length as the path; index 0 is always 0.
func CumulativeMeters(p model.Path) []float64 {
	if len(p) == 0 {
		return nil
	}
	cum := make([]float64, len(p))
	if len(p) == 1 {
		return cum
	}
	floats.CumSum(cum[1:], SegmentLengths(p))
	return cum
}

// TotalMeters returns the full length of the path along its segments.
func TotalMeters(p model.Path) float64 {
	return floats.Sum(SegmentLengths(p))
}
