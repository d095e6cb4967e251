package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"price-tracker-bot/internal/metrics"
)

// Scheduler drives periodic sweeps. At most one sweep is in flight: when a
// tick fires while the previous sweep is still running, the trigger is
// skipped rather than queued.
type Scheduler struct {
	cron    *cron.Cron
	engine  *Engine
	log     *slog.Logger
	running atomic.Bool
	entryID cron.EntryID
}

// NewScheduler creates a Scheduler that runs a sweep on a fixed interval.
func NewScheduler(
	eng *Engine,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runSweep)
	if err != nil {
		return nil, err
	}
	s.entryID = id

	return s, nil
}

// Start begins running scheduled sweeps.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running sweep to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// TriggerNow runs a sweep immediately, subject to the same
// at-most-one-in-flight guard as scheduled ticks. Returns false when a
// sweep was already running.
func (s *Scheduler) TriggerNow(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	defer s.running.Store(false)

	if err := s.engine.RunSweep(ctx); err != nil {
		s.log.Error("triggered sweep failed", "error", err)
	}
	return true
}

func (s *Scheduler) runSweep() {
	if !s.running.CompareAndSwap(false, true) {
		metrics.SweepSkippedTotal.Inc()
		s.log.Warn("previous sweep still running, skipping trigger")
		return
	}
	defer s.running.Store(false)

	s.log.Info("scheduled sweep starting")
	if err := s.engine.RunSweep(context.Background()); err != nil {
		s.log.Error("scheduled sweep failed", "error", err)
	}
}
