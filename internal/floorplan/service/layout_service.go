package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/estimator"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/repository"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/logging"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/metrics"
)

// LayoutStore persists saved layouts.
type LayoutStore interface {
	Create(ctx context.Context, ownerUID, name, description string, layout domain.Layout) (*domain.StoredLayout, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.StoredLayout, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]domain.StoredLayout, error)
	SoftDelete(ctx context.Context, ownerUID, publicID string) (bool, error)
}

// ResultCache memoizes engine results per engine cache scope and request.
type ResultCache interface {
	Get(ctx context.Context, scope string, req domain.GenerationRequest) (*engine.Result, error)
	Set(ctx context.Context, scope string, req domain.GenerationRequest, res engine.Result) error
}

// SaveInput is a layout submitted for storage.
type SaveInput struct {
	Name        string
	Description string
	Layout      domain.Layout
}

// LayoutService handles layout generation, estimation and storage.
type LayoutService struct {
	engine    *engine.Engine
	estimator *estimator.Estimator
	store     LayoutStore
	cache     ResultCache
	logger    *zap.Logger
}

// NewLayoutService wires the service. cache may be nil.
func NewLayoutService(eng *engine.Engine, est *estimator.Estimator, store LayoutStore, cache ResultCache, logger *zap.Logger) *LayoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LayoutService{
		engine:    eng,
		estimator: est,
		store:     store,
		cache:     cache,
		logger:    logger,
	}
}

// Generate returns the engine result for req, served from the cache when
// possible. Cache failures are logged and never fail the request.
func (s *LayoutService) Generate(ctx context.Context, req domain.GenerationRequest) (engine.Result, error) {
	log := logging.FromContext(ctx, s.logger)
	scope := s.engine.CacheScope()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, scope, req)
		switch {
		case err == nil:
			metrics.CacheHits.WithLabelValues("generate").Inc()
			return *cached, nil
		case errors.Is(err, repository.ErrCacheMiss):
			metrics.CacheMisses.WithLabelValues("generate").Inc()
		default:
			log.Warn("layout cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	res, err := s.engine.Generate(req)
	if err != nil {
		return engine.Result{}, err
	}
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	metrics.LayoutsGenerated.WithLabelValues(s.engine.Variant()).Inc()
	for _, d := range res.Diagnostics {
		metrics.Diagnostics.WithLabelValues(d.Code).Inc()
	}

	log.Debug("layout generated",
		zap.Float64("width", req.Width),
		zap.Float64("height", req.Height),
		zap.Int("rooms", len(res.Layout.Rooms)),
		zap.Int("diagnostics", len(res.Diagnostics)))

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope, req, res); err != nil {
			log.Warn("layout cache write failed", zap.Error(err))
		}
	}
	return res, nil
}

// Estimate rejects malformed layouts before estimating.
func (s *LayoutService) Estimate(_ context.Context, layout domain.Layout) (domain.ParameterEstimate, error) {
	if err := layout.Validate(); err != nil {
		return domain.ParameterEstimate{}, err
	}
	return s.estimator.Estimate(layout), nil
}

func (s *LayoutService) Save(ctx context.Context, ownerUID string, in SaveInput) (*domain.StoredLayout, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if err := in.Layout.Validate(); err != nil {
		return nil, err
	}
	if in.Layout.Variant == "" {
		in.Layout.Variant = estimator.Variant(in.Layout)
	}

	stored, err := s.store.Create(ctx, ownerUID, name, strings.TrimSpace(in.Description), in.Layout)
	if err != nil {
		return nil, fmt.Errorf("save layout: %w", err)
	}
	logging.FromContext(ctx, s.logger).Info("layout saved",
		zap.String("layout_id", stored.PublicID),
		zap.String("owner_uid", ownerUID))
	return stored, nil
}

func (s *LayoutService) Get(ctx context.Context, publicID string) (*domain.StoredLayout, error) {
	return s.store.GetByPublicID(ctx, publicID)
}

func (s *LayoutService) List(ctx context.Context, ownerUID string) ([]domain.StoredLayout, error) {
	return s.store.ListByOwner(ctx, ownerUID)
}

// Delete soft-deletes the owner's layout. Layouts owned by someone else are
// reported as not found.
func (s *LayoutService) Delete(ctx context.Context, ownerUID, publicID string) error {
	ok, err := s.store.SoftDelete(ctx, ownerUID, publicID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrLayoutNotFound
	}
	logging.FromContext(ctx, s.logger).Info("layout deleted",
		zap.String("layout_id", publicID),
		zap.String("owner_uid", ownerUID))
	return nil
}

// EstimateStored estimates the program of a saved layout.
func (s *LayoutService) EstimateStored(ctx context.Context, publicID string) (domain.ParameterEstimate, error) {
	stored, err := s.store.GetByPublicID(ctx, publicID)
	if err != nil {
		return domain.ParameterEstimate{}, err
	}
	return s.Estimate(ctx, stored.Layout)
}
