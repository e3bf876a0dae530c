package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-stock-bot/internal/bot/config"
	"golang-stock-bot/internal/bot/repository"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/retry"
	"golang-stock-bot/pkg/telegram"
	"golang-stock-bot/pkg/utils"

	"github.com/robfig/cron/v3"
)

// Mode tells how the scheduler decides when to run.
type Mode string

const (
	// ModeProduction runs once per weekday at the configured time.
	ModeProduction Mode = "production"
	// ModeTest runs immediately and then on a short fixed interval.
	ModeTest Mode = "test"
)

// SchedulerService defines the interface for the update scheduling loop.
type SchedulerService interface {
	Start(ctx context.Context)
	Tick(ctx context.Context)
	NextRun() time.Time
	LastRun() time.Time
	Mode() Mode
}

type schedulerService struct {
	updateSvc       UpdateService
	locker          repository.SlotLocker
	log             *logger.Logger
	mode            Mode
	schedule        cron.Schedule
	pollingInterval time.Duration
	testInterval    time.Duration
	loc             *time.Location
	now             func() time.Time

	mu      sync.RWMutex
	nextRun time.Time
	lastRun time.Time
}

// NewSchedulerService creates the scheduler. In production mode the cron spec
// "MM HH * * 1-5" is built from schedule.time and evaluated in app.time_zone.
func NewSchedulerService(cfg *config.Config, updateSvc UpdateService, locker repository.SlotLocker, log *logger.Logger) (SchedulerService, error) {
	return newSchedulerService(cfg, updateSvc, locker, log, time.Now)
}

func newSchedulerService(cfg *config.Config, updateSvc UpdateService, locker repository.SlotLocker, log *logger.Logger, now func() time.Time) (*schedulerService, error) {
	hour, minute, err := config.ParseClock(cfg.Schedule.Time)
	if err != nil {
		return nil, err
	}
	spec := fmt.Sprintf("%d %d * * 1-5", minute, hour)
	schedule, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %q: %w", spec, err)
	}

	mode := ModeProduction
	if cfg.App.TestMode {
		mode = ModeTest
	}
	if locker == nil {
		locker = repository.NewNoopSlotLocker()
	}

	s := &schedulerService{
		updateSvc:       updateSvc,
		locker:          locker,
		log:             log,
		mode:            mode,
		schedule:        schedule,
		pollingInterval: cfg.Schedule.PollingInterval,
		testInterval:    cfg.Schedule.TestInterval,
		loc:             cfg.Location(),
		now:             now,
	}
	if mode == ModeProduction {
		s.nextRun = schedule.Next(now().In(s.loc))
	}
	return s, nil
}

// Start runs the scheduling loop until ctx is cancelled.
func (s *schedulerService) Start(ctx context.Context) {
	interval := s.pollingInterval
	if s.mode == ModeTest {
		interval = s.testInterval
		s.log.Info("Scheduler started in test mode", logger.DurationField("interval", interval))
		s.Tick(ctx)
	} else {
		s.log.Info("Scheduler started", logger.StringField("time_zone", s.loc.String()))
		s.logNextRun()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs the pipeline if it is due. In test mode every tick is due.
func (s *schedulerService) Tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if s.mode == ModeTest {
		s.runCycle(ctx)
		s.setNextRun(s.now().Add(s.testInterval))
		s.logNextRun()
		return
	}

	now := s.now().In(s.loc)
	slot := s.NextRun()
	if now.Before(slot) {
		return
	}

	acquired, err := s.locker.Acquire(ctx, slot)
	if err != nil {
		if retry.IsShutdown(ctx, err) {
			return
		}
		s.log.Warn("Failed to acquire slot lock, running anyway", logger.ErrorField(err), logger.TimeField("slot", slot))
		acquired = true
	}
	if acquired {
		s.runCycle(ctx)
	} else {
		s.log.Info("Slot already taken by another instance", logger.TimeField("slot", slot))
	}

	s.setNextRun(s.schedule.Next(s.now().In(s.loc)))
	s.logNextRun()
}

func (s *schedulerService) runCycle(ctx context.Context) {
	s.mu.Lock()
	s.lastRun = s.now()
	s.mu.Unlock()

	err := utils.RecoverToError(func() error {
		_, err := s.updateSvc.Run(ctx)
		return err
	})
	switch {
	case err == nil:
	case retry.IsShutdown(ctx, err):
		s.log.Info("Update interrupted by shutdown")
	default:
		s.log.Error("Update failed", logger.ErrorField(err))
	}
}

func (s *schedulerService) logNextRun() {
	next := s.NextRun()
	s.log.Info(telegram.FormatNextRunMessage(next), logger.TimeField("next_run", next))
}

func (s *schedulerService) setNextRun(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRun = t
}

func (s *schedulerService) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextRun
}

func (s *schedulerService) LastRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

func (s *schedulerService) Mode() Mode {
	return s.mode
}
