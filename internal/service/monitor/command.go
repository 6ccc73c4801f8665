package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/proximity-lock/internal/config"
	"github.com/oshokin/proximity-lock/internal/logger"
	"github.com/oshokin/proximity-lock/internal/scanner"
	"github.com/oshokin/proximity-lock/internal/service/common"
	"github.com/oshokin/proximity-lock/internal/service/locker"
)

// Options controls the monitor configuration and debug switches.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// NoLock prevents the lock command from firing, for debugging.
	NoLock bool
	// Demo replaces the BLE scanner with scripted fake devices.
	Demo bool
}

// ErrNoTarget indicates the settings file names no device to watch.
var ErrNoTarget = errors.New("no target device configured, run with --setup first")

// Run loads the settings, wires the scanner and locker and blocks in the
// monitoring loop until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "proximity-monitor")

	// Two monitors on one adapter would corrupt each other's episodes.
	if err := common.EnsureSingleInstance(); err != nil {
		return fmt.Errorf("single instance check: %w", err)
	}

	// A broken settings file degrades to defaults; monitoring must not abort.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to load settings, continuing with defaults", "error", err)
	}

	if !cfg.Target().HasCriteria() {
		return ErrNoTarget
	}

	// Detect current system actor for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	var s scanner.Scanner = scanner.NewBLEScanner()
	if opts.Demo {
		s = scanner.NewMockScanner()
	}

	logger.InfoKV(ctx, "Monitoring target device",
		"hostname", actor.Hostname,
		"username", actor.Username,
		"device_name", cfg.TargetDeviceName,
		"device_address", cfg.TargetDeviceAddress,
		"threshold_dbm", cfg.DistanceThreshold,
		"scan_duration", cfg.ScanDuration().String(),
		"scan_interval", cfg.ScanInterval().String(),
		"grace_period", cfg.GracePeriod().String(),
		"lock_enabled", cfg.LockEnabled && !opts.NoLock)

	return newService(cfg, s, locker.System{}, opts.NoLock).loop(ctx)
}
