package estimator

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
)

func TestEstimate_GeneratedHouse(t *testing.T) {
	cfg := domain.DefaultConfig()
	res, err := engine.New(cfg).Generate(domain.GenerationRequest{Width: 40, Height: 30, MasterRooms: 2, UnattachedBathrooms: 1, Cars: 1})
	require.NoError(t, err)

	est := New(cfg).Estimate(res.Layout)

	assert.Equal(t, 40.0, est.Width)
	assert.Equal(t, 30.0, est.Height)
	assert.Equal(t, 2, est.MasterRooms)
	assert.Equal(t, 1, est.UnattachedBathrooms)
	assert.Equal(t, 4, est.TotalBathrooms)
	assert.Equal(t, 1, est.Cars)
	assert.Equal(t, 0, est.Bikes)
}

func TestEstimate_RoundTrip(t *testing.T) {
	cfg := domain.DefaultConfig()
	eng, est := engine.New(cfg), New(cfg)

	for m := 0; m <= 3; m++ {
		for cars := 0; cars <= 2; cars++ {
			for bikes := 0; bikes <= 3; bikes++ {
				req := domain.GenerationRequest{Width: 60, Height: 60, MasterRooms: m, UnattachedBathrooms: 1, Cars: cars, Bikes: bikes}
				t.Run(fmt.Sprintf("m%d_c%d_b%d", m, cars, bikes), func(t *testing.T) {
					res, err := eng.Generate(req)
					require.NoError(t, err)
					got := est.Estimate(res.Layout)

					assert.Equal(t, m, got.MasterRooms)

					var parking *domain.Room
					for i := range res.Layout.Rooms {
						if res.Layout.Rooms[i].Name == domain.RoomParking {
							parking = &res.Layout.Rooms[i]
						}
					}
					if parking == nil {
						assert.Zero(t, got.Cars)
						assert.Zero(t, got.Bikes)
						return
					}
					fp := math.Min(math.Max(float64(got.Cars)*cfg.CarWidth, float64(got.Bikes)*cfg.BikeWidth), req.Width*cfg.MaxParkingShare)
					assert.InDelta(t, parking.Width(), fp, 0.01)
				})
			}
		}
	}
}

func TestEstimate_LegacyNames(t *testing.T) {
	l := domain.Layout{
		Boundaries: domain.Boundaries{Width: 30, Height: 20},
		Rooms: []domain.Room{
			{Name: "Master Room 1", Rect: domain.Rect{X2: 10, Y2: 10}},
			{Name: "Master Room 2", Rect: domain.Rect{X1: 10, X2: 20, Y2: 10}},
			{Name: "Attached Bathroom 1", Rect: domain.Rect{Y1: 10, X2: 3, Y2: 13}},
			{Name: "Bathroom 1", Rect: domain.Rect{X1: 20, X2: 23, Y2: 3}},
			{Name: "Common Toilet", Rect: domain.Rect{X1: 23, X2: 26, Y2: 3}},
			{Name: "Master Bedroom 1", Rect: domain.Rect{X1: 3, Y1: 10, X2: 10, Y2: 20}},
		},
	}

	assert.Equal(t, domain.VariantSplit, Variant(l))

	est := New(domain.DefaultConfig()).Estimate(l)
	assert.Equal(t, 2, est.MasterRooms)
	assert.Equal(t, 3, est.TotalBathrooms)
	assert.Equal(t, 2, est.UnattachedBathrooms)
}

func TestEstimate_StampWins(t *testing.T) {
	l := domain.Layout{
		Boundaries: domain.Boundaries{Width: 30, Height: 20},
		Variant:    domain.VariantZoned,
		Rooms: []domain.Room{
			{Name: "Master Room 1", Rect: domain.Rect{X2: 10, Y2: 10}},
			{Name: "Master Bedroom 1", Rect: domain.Rect{X1: 10, X2: 20, Y2: 10}},
			{Name: "Master Bedroom 1a", Rect: domain.Rect{X1: 20, X2: 30, Y2: 10}},
		},
	}

	est := New(domain.DefaultConfig()).Estimate(l)
	assert.Equal(t, 1, est.MasterRooms)
}

func TestEstimate_NoParking(t *testing.T) {
	l := domain.Layout{
		Boundaries: domain.Boundaries{Width: 10, Height: 10},
		Rooms:      []domain.Room{{Name: "Kitchen", Rect: domain.Rect{X2: 5, Y2: 5}}},
	}

	est := New(domain.DefaultConfig()).Estimate(l)
	assert.Zero(t, est.Cars)
	assert.Zero(t, est.Bikes)
	assert.Zero(t, est.MasterRooms)
}

func TestEstimate_BestFitParking(t *testing.T) {
	cases := []struct {
		name        string
		parking     domain.Rect
		width       float64
		cars, bikes int
	}{
		{"two bikes", domain.Rect{X1: 84, X2: 100, Y2: 6}, 100, 0, 2},
		{"two cars", domain.Rect{X1: 72, X2: 100, Y2: 6}, 100, 2, 0},
		{"capped by envelope", domain.Rect{X1: 10, X2: 20, Y2: 6}, 20, 0, 2},
		{"rotated rect", domain.Rect{X1: 14, Y1: 6, X2: 0, Y2: 0}, 40, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := domain.Layout{
				Boundaries: domain.Boundaries{Width: tc.width, Height: 40},
				Rooms:      []domain.Room{{Name: "Parking", Rect: tc.parking}},
			}
			est := New(domain.DefaultConfig()).Estimate(l)
			assert.Equal(t, tc.cars, est.Cars)
			assert.Equal(t, tc.bikes, est.Bikes)
		})
	}
}
