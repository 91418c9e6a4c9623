// Package validator filters candidate rooms against per-category minimum areas.
package validator

import (
	"fmt"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

// Dropped describes a room removed for falling under its category minimum.
type Dropped struct {
	Room     domain.Room
	Category domain.Category
	Area     float64
	MinArea  float64
}

func (d Dropped) Diagnostic() domain.Diagnostic {
	return domain.Diagnostic{
		Code:    domain.DiagRoomDropped,
		Room:    d.Room.Name,
		Message: fmt.Sprintf("area %.2f is below the %s minimum of %.2f", d.Area, d.Category, d.MinArea),
	}
}

// Result holds the surviving rooms, in input order, and what was dropped.
type Result struct {
	Kept    []domain.Room
	Dropped []Dropped
}

// Validate keeps rooms whose area meets their category minimum. Rooms are
// never resized.
func Validate(rooms []domain.Room, minima domain.Minima) Result {
	res := Result{Kept: make([]domain.Room, 0, len(rooms))}
	for _, r := range rooms {
		cat := domain.Classify(r.Name)
		area := r.Rect.Area()
		min := minima.For(cat)
		if area >= min {
			res.Kept = append(res.Kept, r)
			continue
		}
		res.Dropped = append(res.Dropped, Dropped{Room: r, Category: cat, Area: area, MinArea: min})
	}
	return res
}
