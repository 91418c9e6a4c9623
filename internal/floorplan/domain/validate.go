package domain

import (
	"fmt"
	"math"
	"strings"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate rejects requests the engine must not attempt.
func (r GenerationRequest) Validate(cfg Config) error {
	if !finite(r.Width) || !finite(r.Height) || r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %vx%v", ErrInvalidEnvelope, r.Width, r.Height)
	}
	if cfg.MaxDimension > 0 && (r.Width > cfg.MaxDimension || r.Height > cfg.MaxDimension) {
		return fmt.Errorf("%w: dimensions exceed %v", ErrInvalidEnvelope, cfg.MaxDimension)
	}

	counts := []struct {
		name string
		v    int
	}{
		{"master_rooms", r.MasterRooms},
		{"unattached_bathrooms", r.UnattachedBathrooms},
		{"cars", r.Cars},
		{"bikes", r.Bikes},
	}
	for _, c := range counts {
		if c.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidCount, c.name, c.v)
		}
		if cfg.MaxCount > 0 && c.v > cfg.MaxCount {
			return fmt.Errorf("%w: %s exceeds %d", ErrInvalidCount, c.name, cfg.MaxCount)
		}
	}
	return nil
}

// Validate checks that a layout is structurally usable by the estimator.
func (l Layout) Validate() error {
	b := l.Boundaries
	if !finite(b.Width) || !finite(b.Height) || b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: boundaries must be positive", ErrMalformedLayout)
	}
	if l.Rooms == nil {
		return fmt.Errorf("%w: rooms are required", ErrMalformedLayout)
	}
	for i, r := range l.Rooms {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("%w: room %d has no name", ErrMalformedLayout, i)
		}
		if !finite(r.X1) || !finite(r.Y1) || !finite(r.X2) || !finite(r.Y2) {
			return fmt.Errorf("%w: room %q has non-finite coordinates", ErrMalformedLayout, r.Name)
		}
	}
	return nil
}
