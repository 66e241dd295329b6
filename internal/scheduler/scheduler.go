package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobhunter/internal/license"
	"jobhunter/internal/logging"
	"jobhunter/internal/storage"
)

// Scheduler configuration constants
const (
	DefaultSweepInterval = time.Hour
	MinSweepInterval     = time.Second
)

// ResetScheduler rolls periodic quota counters over at each month boundary.
// It sweeps on a coarse interval and resets every known profile once the
// boundary has passed, so counters recover even when a subject is idle
// across the rollover.
type ResetScheduler struct {
	engine   *license.Engine
	profiles storage.ProfileRepository
	logger   logging.Logger
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	nextSweep time.Time
}

// NewResetScheduler creates a scheduler over the given engine and profile
// store. A non-positive or sub-second interval falls back to the default.
func NewResetScheduler(engine *license.Engine, profiles storage.ProfileRepository, logger logging.Logger, interval time.Duration) *ResetScheduler {
	if interval < MinSweepInterval {
		interval = DefaultSweepInterval
	}
	return &ResetScheduler{
		engine:   engine,
		profiles: profiles,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Start launches the sweep loop.
func (s *ResetScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("reset scheduler already running")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.nextSweep = license.NextResetBoundary(s.now())

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Reset scheduler started", map[string]interface{}{
		"sweep_interval": s.interval.String(),
		"next_rollover":  s.nextSweep.Format(time.RFC3339),
	})
	return nil
}

// Stop halts the sweep loop, waiting for an in-flight sweep to finish or
// the context to expire.
func (s *ResetScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	// Release the lock before waiting so an in-flight sweep can finish.
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("reset scheduler stop timed out: %w", ctx.Err())
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Reset scheduler stopped", map[string]interface{}{})
	return nil
}

// IsHealthy reports whether the sweep loop is running.
func (s *ResetScheduler) IsHealthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ResetScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.maybeSweep(ctx)
		}
	}
}

// maybeSweep resets every profile's counters once the month boundary has
// passed, then schedules the next rollover.
func (s *ResetScheduler) maybeSweep(ctx context.Context) {
	s.mu.Lock()
	due := !s.now().Before(s.nextSweep)
	s.mu.Unlock()
	if !due {
		return
	}

	reset, err := s.sweep(ctx)

	s.mu.Lock()
	s.nextSweep = license.NextResetBoundary(s.now())
	next := s.nextSweep
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Quota rollover sweep failed", map[string]interface{}{
			"error":          err.Error(),
			"profiles_reset": reset,
		})
		return
	}
	s.logger.Info("Quota rollover sweep completed", map[string]interface{}{
		"profiles_reset": reset,
		"next_rollover":  next.Format(time.RFC3339),
	})
}

// sweep resets counters for all profiles and returns how many succeeded.
// It keeps going past per-profile failures so one bad subject cannot
// starve the rest.
func (s *ResetScheduler) sweep(ctx context.Context) (int, error) {
	all, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing profiles: %w", err)
	}

	reset := 0
	var firstErr error
	for _, p := range all {
		if err := s.engine.ResetAllCounters(ctx, p.ID); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("resetting %s: %w", p.ID, err)
			}
			continue
		}
		reset++
	}
	return reset, firstErr
}
