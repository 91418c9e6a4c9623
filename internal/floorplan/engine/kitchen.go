package engine

import (
	"math"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

// kitchenFromDecorative lowers the decorative band so the kitchen, started on
// the private cursor with nominal height h0, can grow upwards into it.
func (p *plan) kitchenFromDecorative(h0 float64) bool {
	if p.decorative < 0 || p.privateW <= 0 {
		return false
	}
	m := p.cfg.Minima
	deco := p.rooms[p.decorative]
	y := p.cursor[wingPrivate]

	need := ceil2(m.Kitchen/p.privateW) - h0
	if need <= 0 || need >= deco.Height() {
		return false
	}

	if (deco.Height()-need)*p.privateW < m.Decorative {
		// the band is too small to keep; it becomes part of the kitchen
		p.rooms[p.decorative].Name = domain.RoomKitchen
		p.rooms[p.decorative].Y2 = y + h0
		p.last[wingPrivate] = p.decorative
		p.decorative = -1
	} else {
		p.rooms[p.decorative].Y2 = deco.Y2 - need
		kitchen := domain.Rect{X1: 0, Y1: deco.Y2 - need, X2: p.privateW, Y2: y + h0}
		p.last[wingPrivate] = p.emit(domain.RoomKitchen, kitchen)
	}
	p.cursor[wingPrivate] = y + h0
	p.note(domain.DiagKitchenFallback, domain.RoomKitchen, "kitchen extended into the decorative area")
	return true
}

// kitchenFromParking shortens the parking block and puts the kitchen in the
// freed part of the parking column.
func (p *plan) kitchenFromParking() bool {
	if p.parking < 0 || p.parkingW <= 0 {
		return false
	}
	park := p.rooms[p.parking]
	need := ceil2(p.cfg.Minima.Kitchen / p.parkingW)
	if need >= park.Height() {
		return false
	}

	p.rooms[p.parking].Y2 = park.Y2 - need
	p.emit(domain.RoomKitchen, domain.Rect{X1: park.X1, Y1: park.Y2 - need, X2: park.X2, Y2: park.Y2})
	p.note(domain.DiagKitchenFallback, domain.RoomKitchen, "kitchen taken from the parking block")
	return true
}

func hasKitchen(rooms []domain.Room) bool {
	for _, r := range rooms {
		if domain.IsKitchen(r.Name) {
			return true
		}
	}
	return false
}

// carveKitchen takes a kitchen stripe off the bottom of the largest room, or
// renames that room when the remainder would fall under its own minimum.
// Corridor and parking are only used when nothing else qualifies.
func carveKitchen(rooms []domain.Room, minima domain.Minima) ([]domain.Room, bool) {
	host := largestRoom(rooms, minima.Kitchen, func(name string) bool {
		return name != domain.RoomCorridor && name != domain.RoomParking
	})
	if host < 0 {
		host = largestRoom(rooms, minima.Kitchen, func(string) bool { return true })
	}
	if host < 0 {
		return rooms, false
	}

	h := rooms[host].Rect.Normalize()
	stripe := math.Max(h.Height()*0.2, minima.Kitchen/h.Width())
	cut := floor2(h.Y2 - stripe)

	out := make([]domain.Room, 0, len(rooms)+1)
	out = append(out, rooms[:host]...)

	rest := domain.Rect{X1: h.X1, Y1: h.Y1, X2: h.X2, Y2: cut}
	kitchen := domain.Rect{X1: h.X1, Y1: cut, X2: h.X2, Y2: h.Y2}
	restMin := minima.For(domain.Classify(rooms[host].Name))

	if cut <= h.Y1 || kitchen.Area() < minima.Kitchen || rest.Area() < restMin {
		out = append(out, domain.Room{Name: domain.RoomKitchen, Rect: h})
	} else {
		out = append(out,
			domain.Room{Name: rooms[host].Name, Rect: rest},
			domain.Room{Name: domain.RoomKitchen, Rect: kitchen},
		)
	}
	out = append(out, rooms[host+1:]...)
	return out, true
}

func largestRoom(rooms []domain.Room, atLeast float64, eligible func(string) bool) int {
	best, bestArea := -1, 0.0
	for i, r := range rooms {
		if !eligible(r.Name) {
			continue
		}
		if a := r.Rect.Area(); a >= atLeast && a > bestArea+eps {
			best, bestArea = i, a
		}
	}
	return best
}

// kitchenFromEnvelope places a minimum-size kitchen strip along one envelope
// edge and gives up every room it covers. Of the four edges the one covering
// the least room area wins. It reports false when the envelope itself is under
// the kitchen minimum.
func kitchenFromEnvelope(rooms []domain.Room, width, height float64, minKitchen float64) (kept, displaced []domain.Room, ok bool) {
	w, h := domain.Round2(width), domain.Round2(height)
	if w*h+eps < minKitchen {
		return rooms, nil, false
	}

	strip := func(depth, span float64) float64 {
		return math.Min(ceil2(minKitchen/span), depth)
	}
	sy, sx := strip(h, w), strip(w, h)
	candidates := []domain.Rect{
		{X1: 0, Y1: 0, X2: w, Y2: sy},
		{X1: 0, Y1: h - sy, X2: w, Y2: h},
		{X1: 0, Y1: 0, X2: sx, Y2: h},
		{X1: w - sx, Y1: 0, X2: w, Y2: h},
	}

	best, bestCost := domain.Rect{}, math.Inf(1)
	for _, c := range candidates {
		if c.Area()+eps < minKitchen {
			continue
		}
		var cost float64
		for _, r := range rooms {
			if r.Rect.Overlap(c) > eps {
				cost += r.Rect.Area()
			}
		}
		if cost < bestCost {
			best, bestCost = c, cost
		}
	}
	if math.IsInf(bestCost, 1) {
		return rooms, nil, false
	}

	kept = make([]domain.Room, 0, len(rooms)+1)
	for _, r := range rooms {
		if r.Rect.Overlap(best) > eps {
			displaced = append(displaced, r)
			continue
		}
		kept = append(kept, r)
	}
	kept = append(kept, domain.Room{Name: domain.RoomKitchen, Rect: roundRect(best)})
	return kept, displaced, true
}
