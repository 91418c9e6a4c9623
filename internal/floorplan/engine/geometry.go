package engine

import (
	"math"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

const eps = 1e-9

func floor2(v float64) float64 { return math.Floor(v*100+eps) / 100 }
func ceil2(v float64) float64  { return math.Ceil(v*100-eps) / 100 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundRect(r domain.Rect) domain.Rect {
	return domain.Rect{
		X1: domain.Round2(r.X1),
		Y1: domain.Round2(r.Y1),
		X2: domain.Round2(r.X2),
		Y2: domain.Round2(r.Y2),
	}
}

// rotate turns every room 180 degrees about the envelope centre.
func rotate(rooms []domain.Room, width, height float64) []domain.Room {
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		out[i] = domain.Room{
			Name: r.Name,
			Rect: domain.Rect{
				X1: width - r.X2,
				Y1: height - r.Y2,
				X2: width - r.X1,
				Y2: height - r.Y1,
			},
		}
	}
	return out
}

// normalize orders, clamps and rounds coordinates independently.
func normalize(rooms []domain.Room, width, height float64) []domain.Room {
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		n := r.Rect.Normalize()
		n = domain.Rect{
			X1: clamp(n.X1, 0, width),
			Y1: clamp(n.Y1, 0, height),
			X2: clamp(n.X2, 0, width),
			Y2: clamp(n.Y2, 0, height),
		}
		out[i] = domain.Room{Name: r.Name, Rect: roundRect(n)}
	}
	return out
}
