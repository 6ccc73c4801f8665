package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/proximity-lock/internal/config"
	"github.com/oshokin/proximity-lock/internal/domain/proximity"
	"github.com/oshokin/proximity-lock/internal/logger"
	"github.com/oshokin/proximity-lock/internal/scanner"
	"github.com/oshokin/proximity-lock/internal/service/locker"
)

// transientFaultBackoff is how long the loop pauses after a failed cycle,
// deliberately longer than the default scan interval.
const transientFaultBackoff = 5 * time.Second

// service ties the scanner, resolver and locker into the monitoring loop.
type service struct {
	cfg     *config.Config
	scanner scanner.Scanner
	locker  locker.Locker
	noLock  bool

	// lockTriggered marks a departure episode that already resulted in a
	// lock attempt. It is touched only by the single loop goroutine, so no
	// synchronization is needed. Cleared by a confirmed near observation.
	lockTriggered bool
}

// newService wires the collaborators into an armed monitoring service.
func newService(cfg *config.Config, s scanner.Scanner, l locker.Locker, noLock bool) *service {
	return &service{
		cfg:     cfg,
		scanner: s,
		locker:  l,
		noLock:  noLock,
	}
}

// loop runs scan cycles until the context is canceled.
// Cycle errors are transient faults: logged, backed off, retried forever.
func (s *service) loop(ctx context.Context) error {
	for {
		err := s.cycle(ctx)
		if ctx.Err() != nil {
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		}

		pause := s.cfg.ScanInterval()

		if err != nil {
			logger.ErrorKV(ctx, "Scan cycle failed", "error", err, "backoff", transientFaultBackoff.String())

			pause = transientFaultBackoff
		}

		if !sleepContext(ctx, pause) {
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		}
	}
}

// cycle performs one scan/resolve/classify pass plus any grace-period
// handling it leads to. The returned error marks a transient fault.
func (s *service) cycle(ctx context.Context) error {
	readings, err := s.scanner.Scan(ctx, s.cfg.ScanDuration())
	if err != nil {
		return fmt.Errorf("scan devices: %w", err)
	}

	target, found := proximity.Resolve(readings, s.cfg.Target())
	if !found {
		// A missed scan is "unknown", not "far": no state change, no lock.
		logger.InfoKV(ctx, "Target device not found", "visible_devices", len(readings))
		return nil
	}

	logger.InfoKV(ctx, "Target device found",
		"name", target.Name, "address", target.Address, "rssi", target.RSSI)

	if proximity.Classify(target, s.cfg.DistanceThreshold) == proximity.Near {
		if s.lockTriggered {
			logger.Info(ctx, "Target device is back in range, re-arming")
		}

		s.lockTriggered = false

		return nil
	}

	if s.lockTriggered {
		// Still far, episode already spent.
		logger.DebugKV(ctx, "Target device still out of range", "rssi", target.RSSI)
		return nil
	}

	return s.confirmDeparture(ctx)
}

// confirmDeparture waits out the grace period, re-checks once and locks when
// the device is still far or gone. A near re-check abandons the episode.
func (s *service) confirmDeparture(ctx context.Context) error {
	grace := s.cfg.GracePeriod()

	logger.WarnKV(ctx, "Target device out of range, locking soon", "grace_period", grace.String())

	if !sleepContext(ctx, grace) {
		return ctx.Err()
	}

	readings, err := s.scanner.Scan(ctx, s.cfg.ScanDuration())
	if err != nil {
		// Abandon the episode rather than lock on a broken scan;
		// the next cycle starts fresh.
		return fmt.Errorf("grace period re-check: %w", err)
	}

	target, found := proximity.Resolve(readings, s.cfg.Target())
	if found && proximity.Classify(target, s.cfg.DistanceThreshold) == proximity.Near {
		logger.Info(ctx, "Target device detected again, lock canceled")
		return nil
	}

	s.lock(ctx)

	// The episode is spent whether the lock command succeeded or not;
	// only a confirmed near observation re-arms it.
	s.lockTriggered = true

	return nil
}

// lock fires the lock command once, honoring the enable switches.
// An actuation failure is logged and recovered; the next departure episode
// retries naturally.
func (s *service) lock(ctx context.Context) {
	if !s.cfg.LockEnabled || s.noLock {
		logger.Info(ctx, "Locking is disabled, skipping lock command")
		return
	}

	if err := s.locker.Lock(ctx); err != nil {
		logger.ErrorKV(ctx, "Lock command failed", "error", err)
		return
	}

	logger.Info(ctx, "Screen locked")
}

// sleepContext pauses for d, returning false when ctx is canceled first.
// A non-positive d returns immediately.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
