package model

import "fmt"

// Category classifies the equipment level of an ambulance.
type Category int

const (
	CategoryBasic Category = iota
	CategoryBike
	CategoryICU
	CategoryNeonatal
	CategoryALS
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryBasic:
		return "basic"
	case CategoryBike:
		return "bike"
	case CategoryICU:
		return "icu"
	case CategoryNeonatal:
		return "neonatal"
	case CategoryALS:
		return "als"
	default:
		return "unknown"
	}
}

// ParseCategory converts a configuration string into a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "basic":
		return CategoryBasic, nil
	case "bike":
		return CategoryBike, nil
	case "icu":
		return CategoryICU, nil
	case "neonatal":
		return CategoryNeonatal, nil
	case "als":
		return CategoryALS, nil
	default:
		return CategoryBasic, fmt.Errorf("unknown category %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so categories serialize as
// their names in JSON payloads.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Vehicle represents a simulated ambulance available for dispatch.
// Vehicles exist only for the lifetime of one service session and are never
// persisted. Position is mutated exclusively by the active dispatch session.
type Vehicle struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Position Coordinate `json:"position"`
	Category Category   `json:"category"`
}

// Validate checks that the vehicle is well formed.
func (v Vehicle) Validate() error {
	if v.ID <= 0 {
		return fmt.Errorf("vehicle id must be positive, got %d", v.ID)
	}
	return v.Position.Validate()
}
