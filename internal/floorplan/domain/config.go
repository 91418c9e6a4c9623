package domain

import "fmt"

// Engine variants. Only VariantZoned is produced; VariantSplit is recognised when
// estimating layouts stored by the earlier deployment.
const (
	VariantZoned = "zoned-v2"
	VariantSplit = "split-v1"
)

// Orientation of a generated layout.
type Orientation string

const (
	OrientationStandard Orientation = "standard"
	OrientationRotated  Orientation = "rotated" // 180 degrees about the envelope centre
)

// ParseOrientation accepts "standard" and "rotated"; empty means standard.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", OrientationStandard:
		return OrientationStandard, nil
	case OrientationRotated:
		return OrientationRotated, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

// Minima holds per-category minimum room areas.
type Minima struct {
	Room       float64
	Bathroom   float64
	Kitchen    float64
	Staircase  float64
	Dining     float64
	Decorative float64
	Entrance   float64
}

// For returns the minimum area for a category.
func (m Minima) For(c Category) float64 {
	switch c {
	case CategoryBathroom:
		return m.Bathroom
	case CategoryKitchen:
		return m.Kitchen
	case CategoryStaircase:
		return m.Staircase
	case CategoryDining:
		return m.Dining
	case CategoryDecorative:
		return m.Decorative
	case CategoryEntrance:
		return m.Entrance
	default:
		return m.Room
	}
}

// Config is the sizing model shared by the engine and the estimator.
// It is passed by value and never mutated.
type Config struct {
	CarWidth      float64
	CarHeight     float64
	BikeWidth     float64
	BikeHeight    float64
	CorridorWidth float64

	// MaxParkingShare caps parking width as a fraction of envelope width.
	MaxParkingShare float64
	// PassageGap separates an attached bathroom from its bedroom's edge.
	PassageGap float64

	Minima      Minima
	Orientation Orientation

	MaxDimension float64
	MaxCount     int
}

func DefaultConfig() Config {
	return Config{
		CarWidth:        14,
		CarHeight:       6,
		BikeWidth:       8,
		BikeHeight:      3,
		CorridorWidth:   4,
		MaxParkingShare: 0.5,
		PassageGap:      1,
		Minima: Minima{
			Room:       8,
			Bathroom:   6,
			Kitchen:    10,
			Staircase:  12,
			Dining:     15,
			Decorative: 10,
			Entrance:   10,
		},
		Orientation:  OrientationStandard,
		MaxDimension: 10000,
		MaxCount:     100,
	}
}
