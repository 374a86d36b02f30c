package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinate
		ok   bool
	}{
		{"valid", Coordinate{Lat: 19.295, Lon: 72.854}, true},
		{"lat north pole", Coordinate{Lat: 90, Lon: 0}, true},
		{"lat too high", Coordinate{Lat: 90.1, Lon: 0}, false},
		{"lat too low", Coordinate{Lat: -91, Lon: 0}, false},
		{"lon too high", Coordinate{Lat: 0, Lon: 180.5}, false},
		{"lon too low", Coordinate{Lat: 0, Lon: -181}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCoordinateLonLat(t *testing.T) {
	c := Coordinate{Lat: 19.295, Lon: 72.854}
	assert.Equal(t, [2]float64{72.854, 19.295}, c.LonLat())
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range []Category{CategoryBasic, CategoryBike, CategoryICU, CategoryNeonatal, CategoryALS} {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	if _, err := ParseCategory("hovercraft"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestVehicleJSONCategory(t *testing.T) {
	v := Vehicle{ID: 1, Name: "Unit 01", Position: Coordinate{Lat: 19.3, Lon: 72.85}, Category: CategoryICU}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"category":"icu"`)

	var back Vehicle
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, v, back)
}

func TestVehicleValidate(t *testing.T) {
	v := Vehicle{ID: 0, Position: Coordinate{Lat: 0, Lon: 0}}
	assert.Error(t, v.Validate())
	v.ID = 1
	assert.NoError(t, v.Validate())
	v.Position.Lat = 123
	assert.Error(t, v.Validate())
}

func TestPathDegenerate(t *testing.T) {
	a := Coordinate{Lat: 19.29, Lon: 72.85}
	b := Coordinate{Lat: 19.30, Lon: 72.86}
	assert.True(t, Path{}.Degenerate())
	assert.True(t, Path{a}.Degenerate())
	assert.True(t, Path{a, a}.Degenerate())
	assert.False(t, Path{a, b}.Degenerate())
	assert.False(t, Path{a, b, a}.Degenerate())
}

func TestPathValidate(t *testing.T) {
	assert.Error(t, Path{}.Validate())
	p := Path{{Lat: 19.29, Lon: 72.85}, {Lat: 200, Lon: 0}}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path[1]")
}
