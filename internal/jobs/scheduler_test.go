package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/metrics"
)

type fakePurger struct {
	before time.Time
	n      int64
	err    error
}

func (f *fakePurger) PurgeDeleted(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return f.n, f.err
}

type fakeSweeper struct{ calls int }

func (f *fakeSweeper) Sweep() int {
	f.calls++
	return 2
}

func TestRunPurge(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	purger := &fakePurger{n: 4}
	s := NewScheduler(purger, nil, Options{PurgeSchedule: "0 0 3 * * *", Retention: 48 * time.Hour}, zap.New(core))
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	before := testutil.ToFloat64(metrics.LayoutsPurged)
	s.RunPurge(context.Background())

	assert.Equal(t, now.Add(-48*time.Hour), purger.before)
	assert.Equal(t, before+4, testutil.ToFloat64(metrics.LayoutsPurged))
	require.Equal(t, 1, logs.FilterMessage("purged deleted layouts").Len())
}

func TestRunPurge_Error(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewScheduler(&fakePurger{err: errors.New("db down")}, nil, Options{Retention: time.Hour}, zap.New(core))

	s.RunPurge(context.Background())
	assert.Equal(t, 1, logs.FilterMessage("purge deleted layouts failed").Len())
}

func TestRunSweep(t *testing.T) {
	sw := &fakeSweeper{}
	s := NewScheduler(nil, sw, Options{}, nil)
	s.RunSweep()
	assert.Equal(t, 1, sw.calls)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&fakePurger{}, nil, Options{PurgeSchedule: "every night"}, nil)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&fakePurger{}, &fakeSweeper{}, Options{PurgeSchedule: "0 0 3 * * *"}, nil)
	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
