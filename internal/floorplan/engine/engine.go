// Package engine partitions a rectangular envelope into named rooms.
//
// Generation is a pure function of the request and the sizing Config: the same
// inputs always produce the same rooms in the same order. Zones are allocated
// in a fixed sequence (parking, circulation, entrance, kitchen, master suites,
// storage, guest suites, bathrooms, living space, staircase), each advancing a
// per-wing cursor. The private wing lies left of the corridor, the public wing
// is the column under the parking block.
//
// After allocation the rooms are optionally rotated, rounded to two decimals,
// validated against category minima, and a kitchen is guaranteed.
package engine

import (
	"fmt"
	"hash/fnv"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/validator"
)

// Result is a generated layout plus the soft diagnostics gathered on the way.
type Result struct {
	Layout      domain.Layout       `json:"layout"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
}

// Engine generates layouts for a fixed sizing Config. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg domain.Config
}

func New(cfg domain.Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() domain.Config { return e.cfg }

// Variant is the engine variant stamped on every layout.
func (e *Engine) Variant() string { return domain.VariantZoned }

// CacheScope identifies the configuration that shapes a layout besides the
// request. Engines with equal scopes produce identical results.
func (e *Engine) CacheScope() string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%v", e.cfg.Minima)
	return fmt.Sprintf("%s:%s:%08x", domain.VariantZoned, e.cfg.Orientation, h.Sum32())
}

// Generate partitions the request's envelope. It returns ErrInvalidEnvelope or
// ErrInvalidCount before allocating anything.
func (e *Engine) Generate(req domain.GenerationRequest) (Result, error) {
	if err := req.Validate(e.cfg); err != nil {
		return Result{}, err
	}

	p := newPlan(e.cfg, req)
	p.allocate()

	rooms := p.rooms
	if p.kitchenPending {
		var ok bool
		rooms, ok = carveKitchen(rooms, e.cfg.Minima)
		if ok {
			p.note(domain.DiagKitchenFallback, domain.RoomKitchen, "kitchen carved out of the largest room")
		}
	}

	if e.cfg.Orientation == domain.OrientationRotated {
		rooms = rotate(rooms, req.Width, req.Height)
	}
	rooms = normalize(rooms, req.Width, req.Height)

	res := validator.Validate(rooms, e.cfg.Minima)
	for _, d := range res.Dropped {
		p.diags = append(p.diags, d.Diagnostic())
	}

	rooms = res.Kept
	if !hasKitchen(rooms) {
		var ok bool
		rooms, ok = carveKitchen(rooms, e.cfg.Minima)
		if ok {
			p.note(domain.DiagKitchenFallback, domain.RoomKitchen, "kitchen carved out of the largest surviving room")
		} else {
			var displaced []domain.Room
			rooms, displaced, ok = kitchenFromEnvelope(rooms, req.Width, req.Height, e.cfg.Minima.Kitchen)
			for _, r := range displaced {
				p.note(domain.DiagRoomDropped, r.Name, "room gave way to the kitchen")
			}
			if ok {
				p.note(domain.DiagKitchenFallback, domain.RoomKitchen, "kitchen placed along the envelope edge")
			} else {
				p.note(domain.DiagUnderProvisioned, domain.RoomKitchen, "envelope cannot hold a kitchen")
			}
		}
	}

	return Result{
		Layout:      materialize(rooms, req.Width, req.Height),
		Diagnostics: p.diags,
	}, nil
}

func materialize(rooms []domain.Room, width, height float64) domain.Layout {
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		rect := roundRect(r.Rect)
		out[i] = domain.Room{Name: r.Name, Rect: rect, Area: domain.Round2(rect.Area())}
	}
	return domain.Layout{
		Boundaries: domain.Boundaries{Width: domain.Round2(width), Height: domain.Round2(height)},
		Rooms:      out,
		Variant:    domain.VariantZoned,
	}
}
