// Package jobs runs the background maintenance tasks of the API process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/metrics"
)

// Purger hard-deletes layouts soft-deleted before a cutoff.
type Purger interface {
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

// Sweeper evicts idle rate-limiter entries.
type Sweeper interface {
	Sweep() int
}

type Options struct {
	PurgeSchedule string
	Retention     time.Duration
	// SweepSchedule defaults to every five minutes.
	SweepSchedule string
	Timeout       time.Duration
}

type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	sweeper Sweeper
	opt     Options
	logger  *zap.Logger
	now     func() time.Time
}

func NewScheduler(purger Purger, sweeper Sweeper, opt Options, logger *zap.Logger) *Scheduler {
	if opt.SweepSchedule == "" {
		opt.SweepSchedule = "0 */5 * * * *"
	}
	if opt.Timeout == 0 {
		opt.Timeout = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		purger:  purger,
		sweeper: sweeper,
		opt:     opt,
		logger:  logger,
		now:     time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.purger != nil {
		if _, err := s.cron.AddFunc(s.opt.PurgeSchedule, func() { s.RunPurge(context.Background()) }); err != nil {
			return fmt.Errorf("schedule purge %q: %w", s.opt.PurgeSchedule, err)
		}
	}
	if s.sweeper != nil {
		if _, err := s.cron.AddFunc(s.opt.SweepSchedule, s.RunSweep); err != nil {
			return fmt.Errorf("schedule sweep %q: %w", s.opt.SweepSchedule, err)
		}
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		zap.String("purge_schedule", s.opt.PurgeSchedule),
		zap.Duration("retention", s.opt.Retention))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunPurge removes layouts deleted longer ago than the retention window.
func (s *Scheduler) RunPurge(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.opt.Timeout)
	defer cancel()

	cutoff := s.now().Add(-s.opt.Retention)
	n, err := s.purger.PurgeDeleted(ctx, cutoff)
	if err != nil {
		s.logger.Error("purge deleted layouts failed", zap.Error(err))
		return
	}
	metrics.LayoutsPurged.Add(float64(n))
	s.logger.Info("purged deleted layouts", zap.Int64("count", n), zap.Time("cutoff", cutoff))
}

func (s *Scheduler) RunSweep() {
	if n := s.sweeper.Sweep(); n > 0 {
		s.logger.Debug("evicted idle rate limit entries", zap.Int("count", n))
	}
}
