package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang-stock-bot/internal/bot/config"
	"golang-stock-bot/internal/bot/repository"
	pkgconfig "golang-stock-bot/pkg/config"
	"golang-stock-bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeUpdateService struct {
	runs atomic.Int32
	run  func(ctx context.Context) (*CycleResult, error)
}

func (f *fakeUpdateService) Run(ctx context.Context) (*CycleResult, error) {
	f.runs.Add(1)
	if f.run != nil {
		return f.run(ctx)
	}
	return &CycleResult{}, nil
}

type fakeLocker struct {
	slots   []time.Time
	granted bool
	err     error
}

func (l *fakeLocker) Acquire(_ context.Context, slot time.Time) (bool, error) {
	l.slots = append(l.slots, slot)
	return l.granted, l.err
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func schedulerConfig() *config.Config {
	return &config.Config{
		App: pkgconfig.App{TimeZone: "America/New_York"},
		Schedule: config.Schedule{
			Time:            "16:30",
			PollingInterval: time.Minute,
			TestInterval:    10 * time.Millisecond,
		},
	}
}

func newTestScheduler(t *testing.T, cfg *config.Config, update UpdateService, locker repository.SlotLocker, clock *fakeClock) *schedulerService {
	t.Helper()
	s, err := newSchedulerService(cfg, update, locker, logger.NewNop(), clock.Now)
	require.NoError(t, err)
	return s
}

func TestSchedulerService_ProductionSlot(t *testing.T) {
	t.Parallel()
	ny := newYork(t)
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, ny)} // Monday
	update := &fakeUpdateService{}
	s := newTestScheduler(t, schedulerConfig(), update, nil, clock)

	require.Equal(t, ModeProduction, s.Mode())
	assert.True(t, s.NextRun().Equal(time.Date(2026, 10, 19, 16, 30, 0, 0, ny)))

	// Before the slot nothing runs.
	s.Tick(context.Background())
	assert.EqualValues(t, 0, update.runs.Load())
	assert.True(t, s.LastRun().IsZero())

	// At the slot the pipeline runs once and the next weekday is scheduled.
	clock.Set(time.Date(2026, 10, 19, 16, 30, 20, 0, ny))
	s.Tick(context.Background())
	assert.EqualValues(t, 1, update.runs.Load())
	assert.True(t, s.LastRun().Equal(clock.Now()))
	assert.True(t, s.NextRun().Equal(time.Date(2026, 10, 20, 16, 30, 0, 0, ny)))

	clock.Set(time.Date(2026, 10, 19, 16, 31, 20, 0, ny))
	s.Tick(context.Background())
	assert.EqualValues(t, 1, update.runs.Load())
}

func TestSchedulerService_SkipsWeekend(t *testing.T) {
	t.Parallel()
	ny := newYork(t)
	clock := &fakeClock{now: time.Date(2026, 10, 23, 17, 0, 0, 0, ny)} // Friday after the slot
	s := newTestScheduler(t, schedulerConfig(), &fakeUpdateService{}, nil, clock)

	next := s.NextRun()
	assert.Equal(t, time.Monday, next.Weekday())
	assert.True(t, next.Equal(time.Date(2026, 10, 26, 16, 30, 0, 0, ny)))
}

func TestSchedulerService_MissedSlotsCollapse(t *testing.T) {
	t.Parallel()
	ny := newYork(t)
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, ny)}
	update := &fakeUpdateService{}
	s := newTestScheduler(t, schedulerConfig(), update, nil, clock)

	// Monday and Tuesday slots were missed, e.g. the host was suspended.
	clock.Set(time.Date(2026, 10, 21, 18, 0, 0, 0, ny))
	s.Tick(context.Background())
	s.Tick(context.Background())

	assert.EqualValues(t, 1, update.runs.Load())
	assert.True(t, s.NextRun().Equal(time.Date(2026, 10, 22, 16, 30, 0, 0, ny)))
}

func TestSchedulerService_SlotLock(t *testing.T) {
	t.Parallel()
	ny := newYork(t)
	slot := time.Date(2026, 10, 19, 16, 30, 0, 0, ny)

	tests := []struct {
		name     string
		locker   *fakeLocker
		wantRuns int32
	}{
		{name: "granted", locker: &fakeLocker{granted: true}, wantRuns: 1},
		{name: "held by another instance", locker: &fakeLocker{granted: false}, wantRuns: 0},
		{name: "locker error runs anyway", locker: &fakeLocker{err: errors.New("connection refused")}, wantRuns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, ny)}
			update := &fakeUpdateService{}
			s := newTestScheduler(t, schedulerConfig(), update, tt.locker, clock)

			clock.Set(time.Date(2026, 10, 19, 16, 30, 5, 0, ny))
			s.Tick(context.Background())

			assert.Equal(t, tt.wantRuns, update.runs.Load())
			require.Len(t, tt.locker.slots, 1)
			assert.True(t, tt.locker.slots[0].Equal(slot))
			assert.True(t, s.NextRun().After(slot))
		})
	}
}

func TestSchedulerService_CycleFailuresDoNotStopLoop(t *testing.T) {
	t.Parallel()
	ny := newYork(t)

	tests := []struct {
		name string
		run  func(ctx context.Context) (*CycleResult, error)
	}{
		{name: "error", run: func(context.Context) (*CycleResult, error) { return nil, ErrTopicRead }},
		{name: "panic", run: func(context.Context) (*CycleResult, error) { panic("nil map") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2026, 10, 19, 16, 29, 0, 0, ny)}
			update := &fakeUpdateService{run: tt.run}
			s := newTestScheduler(t, schedulerConfig(), update, nil, clock)
			clock.Set(time.Date(2026, 10, 19, 16, 30, 0, 0, ny))

			require.NotPanics(t, func() { s.Tick(context.Background()) })
			assert.EqualValues(t, 1, update.runs.Load())
			assert.True(t, s.NextRun().Equal(time.Date(2026, 10, 20, 16, 30, 0, 0, ny)))
		})
	}
}

func TestSchedulerService_TickAfterShutdown(t *testing.T) {
	t.Parallel()
	ny := newYork(t)
	clock := &fakeClock{now: time.Date(2026, 10, 19, 16, 29, 0, 0, ny)}
	update := &fakeUpdateService{}
	s := newTestScheduler(t, schedulerConfig(), update, nil, clock)
	clock.Set(time.Date(2026, 10, 19, 16, 45, 0, 0, ny))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Tick(ctx)

	assert.EqualValues(t, 0, update.runs.Load())
}

func TestSchedulerService_TestMode(t *testing.T) {
	t.Parallel()
	cfg := schedulerConfig()
	cfg.App.TestMode = true
	update := &fakeUpdateService{}
	s, err := newSchedulerService(cfg, update, nil, logger.NewNop(), time.Now)
	require.NoError(t, err)
	require.Equal(t, ModeTest, s.Mode())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Start(ctx)
	}()

	// The first run happens immediately, the following ones every interval.
	require.Eventually(t, func() bool { return update.runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.False(t, s.LastRun().IsZero())
	assert.True(t, s.NextRun().After(s.LastRun()))
}

func TestNewSchedulerService_InvalidTime(t *testing.T) {
	cfg := schedulerConfig()
	cfg.Schedule.Time = "25:00"

	_, err := NewSchedulerService(cfg, &fakeUpdateService{}, nil, logger.NewNop())
	require.Error(t, err)
}
