package domain

import (
	"math"
	"time"
)

// Rect is an axis-aligned rectangle in envelope-local units.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (r Rect) Width() float64  { return math.Abs(r.X2 - r.X1) }
func (r Rect) Height() float64 { return math.Abs(r.Y2 - r.Y1) }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Normalize swaps coordinates so that X1 <= X2 and Y1 <= Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Overlap returns the area shared by r and o. Touching edges overlap by zero.
func (r Rect) Overlap(o Rect) float64 {
	a, b := r.Normalize(), o.Normalize()
	w := math.Min(a.X2, b.X2) - math.Max(a.X1, b.X1)
	h := math.Min(a.Y2, b.Y2) - math.Max(a.Y1, b.Y1)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Within reports whether r lies inside [0,width] x [0,height].
func (r Rect) Within(width, height float64) bool {
	n := r.Normalize()
	return n.X1 >= 0 && n.Y1 >= 0 && n.X2 <= width && n.Y2 <= height
}

// Room is a named rectangle. Area is only populated on output.
type Room struct {
	Name string `json:"name"`
	Rect
	Area float64 `json:"area"`
}

// Boundaries is the building envelope.
type Boundaries struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is a partitioned envelope. Rooms keep allocation order.
type Layout struct {
	Boundaries Boundaries `json:"boundaries"`
	Rooms      []Room     `json:"rooms"`
	Variant    string     `json:"variant,omitempty"`
}

// StoredLayout is a Layout persisted on behalf of an owner.
type StoredLayout struct {
	PublicID    string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Layout      Layout    `json:"layout"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GenerationRequest is the program the engine partitions an envelope for.
type GenerationRequest struct {
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	MasterRooms         int     `json:"master_rooms"`
	UnattachedBathrooms int     `json:"unattached_bathrooms"`
	Cars                int     `json:"cars"`
	Bikes               int     `json:"bikes"`
}

// ParameterEstimate is the estimator's reconstruction of a GenerationRequest.
type ParameterEstimate struct {
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	MasterRooms         int     `json:"master_rooms"`
	UnattachedBathrooms int     `json:"unattached_bathrooms"`
	TotalBathrooms      int     `json:"total_bathrooms"`
	Cars                int     `json:"cars"`
	Bikes               int     `json:"bikes"`
}

// Request converts the estimate back into a request that can be regenerated.
func (e ParameterEstimate) Request() GenerationRequest {
	return GenerationRequest{
		Width:               e.Width,
		Height:              e.Height,
		MasterRooms:         e.MasterRooms,
		UnattachedBathrooms: e.UnattachedBathrooms,
		Cars:                e.Cars,
		Bikes:               e.Bikes,
	}
}

// Diagnostic codes reported alongside a generated layout.
const (
	DiagRoomDropped      = "room_dropped"
	DiagUnderProvisioned = "under_provisioned"
	DiagKitchenFallback  = "kitchen_fallback"
)

// Diagnostic is a soft, non-fatal observation about a generated layout.
type Diagnostic struct {
	Code    string `json:"code"`
	Room    string `json:"room,omitempty"`
	Message string `json:"message"`
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
