package http

import (
	"context"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/service"
)

// LayoutAPI is the service surface the handlers depend on.
type LayoutAPI interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (engine.Result, error)
	Estimate(ctx context.Context, layout domain.Layout) (domain.ParameterEstimate, error)
	Save(ctx context.Context, ownerUID string, in service.SaveInput) (*domain.StoredLayout, error)
	Get(ctx context.Context, publicID string) (*domain.StoredLayout, error)
	List(ctx context.Context, ownerUID string) ([]domain.StoredLayout, error)
	Delete(ctx context.Context, ownerUID, publicID string) error
	EstimateStored(ctx context.Context, publicID string) (domain.ParameterEstimate, error)
}

// Handler bundles the dependencies for layout HTTP endpoints.
type Handler struct {
	svc LayoutAPI
}

func New(svc LayoutAPI) *Handler {
	return &Handler{svc: svc}
}

// generateReq mirrors GenerationRequest with optional counts. "bathrooms" is
// accepted as an alias for unattached_bathrooms.
type generateReq struct {
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	MasterRooms         *int    `json:"master_rooms"`
	UnattachedBathrooms *int    `json:"unattached_bathrooms"`
	Bathrooms           *int    `json:"bathrooms"`
	Cars                *int    `json:"cars"`
	Bikes               *int    `json:"bikes"`
}

func (r generateReq) toDomain() domain.GenerationRequest {
	bathrooms := r.UnattachedBathrooms
	if bathrooms == nil {
		bathrooms = r.Bathrooms
	}
	return domain.GenerationRequest{
		Width:               r.Width,
		Height:              r.Height,
		MasterRooms:         intOr(r.MasterRooms, 1),
		UnattachedBathrooms: intOr(bathrooms, 1),
		Cars:                intOr(r.Cars, 0),
		Bikes:               intOr(r.Bikes, 0),
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

type saveReq struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Boundaries  domain.Boundaries `json:"boundaries"`
	Rooms       []domain.Room     `json:"rooms"`
	Variant     string            `json:"variant"`
}

func (r saveReq) layout() domain.Layout {
	return domain.Layout{Boundaries: r.Boundaries, Rooms: r.Rooms, Variant: r.Variant}
}

// parametersResp keeps the "bathrooms" key older clients read.
type parametersResp struct {
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	MasterRooms         int     `json:"master_rooms"`
	Bathrooms           int     `json:"bathrooms"`
	UnattachedBathrooms int     `json:"unattached_bathrooms"`
	TotalBathrooms      int     `json:"total_bathrooms"`
	Cars                int     `json:"cars"`
	Bikes               int     `json:"bikes"`
}

func toParametersResp(e domain.ParameterEstimate) parametersResp {
	return parametersResp{
		Width:               e.Width,
		Height:              e.Height,
		MasterRooms:         e.MasterRooms,
		Bathrooms:           e.UnattachedBathrooms,
		UnattachedBathrooms: e.UnattachedBathrooms,
		TotalBathrooms:      e.TotalBathrooms,
		Cars:                e.Cars,
		Bikes:               e.Bikes,
	}
}
