package engine

import (
	"fmt"
	"math"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

// wing identifies a cursor-driven allocation column.
type wing int

const (
	wingPrivate wing = iota
	wingPublic
)

// side is where an attached bathroom sits inside a suite footprint.
type side int

const (
	sideLeft side = iota
	sideRight
)

// plan is the mutable state of one Generate call. It never escapes it.
type plan struct {
	cfg domain.Config
	req domain.GenerationRequest

	width, height float64

	rooms []domain.Room
	diags []domain.Diagnostic

	// last holds, per wing, the index of the most recent full-height room
	// whose bottom edge sits on that wing's cursor.
	last       map[wing]int
	decorative int
	parking    int

	parkingW, parkingH     float64
	corridorX1, corridorX2 float64
	privateW, publicW      float64
	remaining              float64
	cursor                 map[wing]float64

	kitchenPending bool
}

func newPlan(cfg domain.Config, req domain.GenerationRequest) *plan {
	return &plan{
		cfg:        cfg,
		req:        req,
		width:      req.Width,
		height:     req.Height,
		last:       make(map[wing]int),
		cursor:     make(map[wing]float64),
		decorative: -1,
		parking:    -1,
	}
}

func (p *plan) allocate() {
	p.allocateParking()
	p.allocateCirculation()
	p.allocateEntrance()
	p.allocateKitchen()
	p.allocateMasterSuites()
	p.allocateStorage()
	p.allocateGuestSuites()
	p.allocateBathrooms()
	p.allocateLiving()
	p.allocateStaircase()
}

func (p *plan) emit(name string, r domain.Rect) int {
	p.rooms = append(p.rooms, domain.Room{Name: name, Rect: r})
	return len(p.rooms) - 1
}

func (p *plan) note(code, room, msg string) {
	p.diags = append(p.diags, domain.Diagnostic{Code: code, Room: room, Message: msg})
}

func (p *plan) suiteFloor() float64 {
	m := p.cfg.Minima
	return 2 * math.Sqrt(m.Bathroom+m.Room)
}

func (p *plan) allocateParking() {
	c := p.cfg
	vehicles := math.Max(float64(p.req.Cars)*c.CarWidth, float64(p.req.Bikes)*c.BikeWidth)

	p.parkingW = math.Min(vehicles, p.width*c.MaxParkingShare)
	p.parkingH = math.Min(math.Max(c.CarHeight, c.BikeHeight), p.height)
	p.remaining = p.height - p.parkingH

	p.corridorX2 = p.width - p.parkingW
	p.corridorX1 = math.Max(0, p.corridorX2-c.CorridorWidth)
	p.privateW = p.corridorX1
	p.publicW = p.parkingW

	p.cursor[wingPrivate] = p.parkingH
	p.cursor[wingPublic] = p.parkingH

	if p.parkingW > 0 {
		p.parking = p.emit(domain.RoomParking, domain.Rect{X1: p.corridorX2, Y1: 0, X2: p.width, Y2: p.parkingH})
	}
}

func (p *plan) allocateCirculation() {
	if p.corridorX2 <= p.corridorX1 {
		return
	}
	if p.height > p.parkingH {
		p.emit(domain.RoomCorridor, domain.Rect{X1: p.corridorX1, Y1: p.parkingH, X2: p.corridorX2, Y2: p.height})
	}
	p.emit(domain.RoomEntranceGate, domain.Rect{X1: p.corridorX1, Y1: 0, X2: p.corridorX2, Y2: p.parkingH})
}

// allocateEntrance fills the private band level with the parking block.
func (p *plan) allocateEntrance() {
	w, band := p.privateW, p.parkingH
	if w <= 0 || band <= 0 {
		return
	}
	m := p.cfg.Minima

	top := 0.0
	foyer := math.Min(band*0.4, 2*math.Sqrt(m.Entrance))
	if w*foyer >= m.Entrance {
		p.emit(domain.RoomFoyer, domain.Rect{X1: 0, Y1: 0, X2: w, Y2: foyer})
		top = foyer
	}
	if w*(band-top) >= m.Decorative {
		p.decorative = p.emit(domain.RoomDecorative, domain.Rect{X1: 0, Y1: top, X2: w, Y2: band})
	}
}

func (p *plan) allocateKitchen() {
	m := p.cfg.Minima
	w := p.privateW
	y := p.cursor[wingPrivate]

	h := math.Max(math.Sqrt(m.Kitchen), math.Min(p.remaining*0.2, w*0.8))
	h = math.Max(0, math.Min(h, p.height-y))

	if w > 0 && w*h >= m.Kitchen {
		p.last[wingPrivate] = p.emit(domain.RoomKitchen, domain.Rect{X1: 0, Y1: y, X2: w, Y2: y + h})
		p.cursor[wingPrivate] = y + h
		return
	}
	if p.kitchenFromDecorative(h) || p.kitchenFromParking() {
		return
	}
	p.kitchenPending = true
}

func (p *plan) allocateMasterSuites() {
	n := p.req.MasterRooms
	if n == 0 {
		return
	}
	h := math.Min(p.height*0.3, math.Max(p.suiteFloor(), p.remaining*0.7/float64(n)))

	placed := 0
	for i := 0; i < n; i++ {
		y := p.cursor[wingPrivate]
		if p.privateW <= 0 || h <= 0 || y+h > p.height+eps {
			break
		}
		fp := domain.Rect{X1: 0, Y1: y, X2: p.privateW, Y2: y + h}
		p.last[wingPrivate] = p.suite(domain.MasterBedroomName(i+1), domain.MasterBathroomName(i+1), fp, sideLeft)
		p.cursor[wingPrivate] = y + h
		placed++
	}
	if placed < n {
		p.note(domain.DiagUnderProvisioned, "Master Bedroom",
			fmt.Sprintf("placed %d of %d master bedrooms", placed, n))
	}
}

// suite emits a bedroom with an attached bathroom carved from its footprint,
// on the side away from the corridor. It returns the bedroom's index.
func (p *plan) suite(bedroom, bathroom string, fp domain.Rect, at side) int {
	w, h := fp.Width(), fp.Height()
	bathW, bathH := w*0.35, h*0.4
	if bathW*bathH < p.cfg.Minima.Bathroom {
		return p.emit(bedroom, fp)
	}
	gap := math.Min(p.cfg.PassageGap, h*0.1)

	bed := fp
	bath := domain.Rect{Y1: fp.Y1 + gap, Y2: fp.Y1 + gap + bathH}
	if at == sideLeft {
		bath.X1, bath.X2 = fp.X1, fp.X1+bathW
		bed.X1 = bath.X2
	} else {
		bath.X1, bath.X2 = fp.X2-bathW, fp.X2
		bed.X2 = bath.X1
	}

	idx := p.emit(bedroom, bed)
	p.emit(bathroom, bath)
	return idx
}

func (p *plan) allocateStorage() {
	m := p.cfg.Minima
	y := p.cursor[wingPrivate]
	if p.privateW <= 0 || y+m.Room > p.height*0.8 {
		return
	}
	h := math.Min(p.height-y-m.Staircase, p.height*0.15)
	if h <= 0 {
		return
	}
	p.last[wingPrivate] = p.emit(domain.RoomUtilityStorage, domain.Rect{X1: 0, Y1: y, X2: p.privateW, Y2: y + h})
	p.cursor[wingPrivate] = y + h
}

func (p *plan) allocateGuestSuites() {
	count := p.req.MasterRooms - 1
	if count < 1 {
		count = 1
	}
	if count > 3 {
		count = 3
	}
	floor := p.suiteFloor()
	h := math.Max(floor, p.remaining*0.6/float64(count))

	placed := 0
	for i := 0; i < count; i++ {
		y := p.cursor[wingPublic]
		if p.publicW <= 0 || y+floor > p.height+eps {
			break
		}
		y2 := math.Min(y+h, p.height)
		fp := domain.Rect{X1: p.corridorX2, Y1: y, X2: p.width, Y2: y2}
		p.last[wingPublic] = p.suite(domain.GuestRoomName(i+1), domain.GuestBathroomName(i+1), fp, sideRight)
		p.cursor[wingPublic] = y2
		placed++
	}
	if placed < count {
		p.note(domain.DiagUnderProvisioned, "Guest Room",
			fmt.Sprintf("placed %d of %d guest rooms", placed, count))
	}
}

func (p *plan) allocateBathrooms() {
	n := p.req.UnattachedBathrooms
	if n == 0 {
		return
	}
	m := p.cfg.Minima
	y := p.cursor[wingPublic]
	remH := p.height - y
	area := p.publicW * remH

	if remH <= 0 || area < m.Bathroom {
		p.note(domain.DiagUnderProvisioned, "Bathroom",
			fmt.Sprintf("placed 0 of %d unattached bathrooms", n))
		return
	}

	k := n
	if area < float64(n)*m.Bathroom {
		k = int(math.Floor(area / m.Bathroom))
	}
	step := remH / float64(k)
	for i := 0; i < k; i++ {
		y1 := y + float64(i)*step
		y2 := y1 + step
		name := domain.BathroomName(i + 1)
		if i == k-1 {
			y2 = p.height
			name = domain.RoomCommonToilet
		}
		p.last[wingPublic] = p.emit(name, domain.Rect{X1: p.corridorX2, Y1: y1, X2: p.width, Y2: y2})
	}
	p.cursor[wingPublic] = p.height

	if k < n {
		p.note(domain.DiagUnderProvisioned, "Bathroom",
			fmt.Sprintf("placed %d of %d unattached bathrooms", k, n))
	}
}

func (p *plan) allocateLiving() {
	y := p.cursor[wingPublic]
	if p.publicW <= 0 || y >= p.height {
		return
	}
	m := p.cfg.Minima
	rem := p.height - y

	switch {
	case rem < math.Sqrt(m.Dining):
		p.emit(domain.RoomUtilitySpace, domain.Rect{X1: p.corridorX2, Y1: y, X2: p.width, Y2: p.height})
	case p.publicW*(rem*0.4) >= m.Dining:
		split := y + rem*0.6
		p.emit(domain.RoomLiving, domain.Rect{X1: p.corridorX2, Y1: y, X2: p.width, Y2: split})
		p.emit(domain.RoomDining, domain.Rect{X1: p.corridorX2, Y1: split, X2: p.width, Y2: p.height})
	default:
		p.emit(domain.RoomLivingDining, domain.Rect{X1: p.corridorX2, Y1: y, X2: p.width, Y2: p.height})
	}
	p.cursor[wingPublic] = p.height
}

// allocateStaircase closes the private wing. A strip too short for stairs is
// merged into the room above it when that room ends on the cursor.
func (p *plan) allocateStaircase() {
	y := p.cursor[wingPrivate]
	if p.privateW <= 0 || y >= p.height {
		return
	}
	strip := domain.Rect{X1: 0, Y1: y, X2: p.privateW, Y2: p.height}

	switch idx, ok := p.last[wingPrivate]; {
	case p.height-y >= math.Sqrt(p.cfg.Minima.Staircase):
		p.emit(domain.RoomStaircase, strip)
	case ok && math.Abs(p.rooms[idx].Y2-y) < eps:
		p.rooms[idx].Y2 = p.height
	default:
		p.emit(domain.RoomUtilitySpace, strip)
	}
	p.cursor[wingPrivate] = p.height
}
