package compliance

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SyncRunner is the orchestrator surface the scheduler drives.
type SyncRunner interface {
	RunFull(ctx context.Context) []SyncResult
}

// Scheduler triggers one full sync daily at a fixed UTC hour. It holds at
// most one pending timer; the delay is recomputed from the wall clock on
// every (re)arm, so a process restarted at an arbitrary time still fires at
// the next target hour rather than drifting from a fixed interval.
type Scheduler struct {
	runner  SyncRunner
	hourUTC int
	now     func() time.Time

	mu    sync.Mutex
	timer *time.Timer
	armed bool
	gen   uint64
}

func NewScheduler(runner SyncRunner, hourUTC int) *Scheduler {
	return &Scheduler{
		runner:  runner,
		hourUTC: hourUTC,
		now:     time.Now,
	}
}

// Start arms the timer for the next occurrence of the target hour. Calling
// Start on an armed scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.armed {
		return
	}
	s.armed = true
	s.gen++
	gen := s.gen

	delay := nextRunDelay(s.now().UTC(), s.hourUTC)
	slog.Info("Daily sync scheduled", "hour_utc", s.hourUTC, "first_run_in", delay.Round(time.Second).String())
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
}

// Stop cancels the pending timer. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		return
	}
	s.armed = false
	s.gen++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	slog.Info("Daily sync scheduler stopped")
}

// IsArmed reports whether a timer is pending.
func (s *Scheduler) IsArmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

func (s *Scheduler) fire(gen uint64) {
	slog.Info("Daily sync timer fired")
	s.runner.RunFull(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-arm only if this fire belongs to the current timer chain. A Stop
	// (or Stop/Start restart) while the run was in flight bumps the
	// generation; re-arming here anyway would leave two live chains.
	if !s.armed || gen != s.gen {
		return
	}

	delay := nextRunDelay(s.now().UTC(), s.hourUTC)
	slog.Info("Daily sync re-armed", "next_run_in", delay.Round(time.Second).String())
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
}

// nextRunDelay computes the delay from now until the next occurrence of
// hourUTC. If the hour has already passed today, the target is tomorrow. The
// result is always positive.
func nextRunDelay(now time.Time, hourUTC int) time.Duration {
	now = now.UTC()
	target := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !target.After(now) {
		target = target.Add(24 * time.Hour)
	}
	return target.Sub(now)
}
