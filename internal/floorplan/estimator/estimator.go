// Package estimator reconstructs a plausible generation request from a layout.
package estimator

import (
	"math"
	"strings"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

type Estimator struct {
	cfg domain.Config
}

func New(cfg domain.Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Estimate never fails; callers reject malformed layouts with Layout.Validate
// beforehand.
func (e *Estimator) Estimate(l domain.Layout) domain.ParameterEstimate {
	est := domain.ParameterEstimate{
		Width:  l.Boundaries.Width,
		Height: l.Boundaries.Height,
	}

	prefix := domain.MasterPrefix(Variant(l)) + " "
	var parking *domain.Room
	for i, r := range l.Rooms {
		if isNumbered(r.Name, prefix) {
			est.MasterRooms++
		}
		if domain.Classify(r.Name) == domain.CategoryBathroom {
			est.TotalBathrooms++
			if !domain.IsAttachedBathroom(r.Name) {
				est.UnattachedBathrooms++
			}
		}
		if parking == nil && r.Name == domain.RoomParking {
			parking = &l.Rooms[i]
		}
	}

	if parking != nil {
		est.Cars, est.Bikes = e.vehicles(parking.Rect.Normalize(), l.Boundaries.Width)
	}
	return est
}

// Variant returns the layout's variant stamp. Unstamped layouts are recognised
// as split-v1 by their bedroom names.
func Variant(l domain.Layout) string {
	if l.Variant != "" {
		return l.Variant
	}
	legacy := domain.MasterPrefix(domain.VariantSplit) + " "
	for _, r := range l.Rooms {
		if isNumbered(r.Name, legacy) {
			return domain.VariantSplit
		}
	}
	return domain.VariantZoned
}

func isNumbered(name, prefix string) bool {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// vehicles searches car/bike counts whose footprint is closest to the parking
// width and whose vehicles fit in the parking area.
func (e *Estimator) vehicles(park domain.Rect, envelopeWidth float64) (cars, bikes int) {
	c := e.cfg
	w, area := park.Width(), park.Area()
	if w <= 0 || c.CarWidth <= 0 || c.BikeWidth <= 0 {
		return 0, 0
	}
	maxCars := int(math.Ceil(w / c.CarWidth))
	maxBikes := int(math.Ceil(w / c.BikeWidth))
	carArea, bikeArea := c.CarWidth*c.CarHeight, c.BikeWidth*c.BikeHeight

	bestDiff, bestUsed := math.Inf(1), -1.0
	for nc := 0; nc <= maxCars; nc++ {
		for nb := 0; nb <= maxBikes; nb++ {
			used := float64(nc)*carArea + float64(nb)*bikeArea
			if used > area+1e-6 {
				continue
			}
			fp := math.Min(math.Max(float64(nc)*c.CarWidth, float64(nb)*c.BikeWidth), envelopeWidth*c.MaxParkingShare)
			diff := math.Abs(fp - w)
			switch {
			case diff < bestDiff-1e-9:
			case math.Abs(diff-bestDiff) <= 1e-9 && used > bestUsed:
			default:
				continue
			}
			bestDiff, bestUsed = diff, used
			cars, bikes = nc, nb
		}
	}
	return cars, bikes
}
