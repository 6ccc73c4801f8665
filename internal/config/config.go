package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/proximity-lock/internal/domain/proximity"
)

// Config holds the monitoring settings for the proximity-lock binary.
// Durations are stored as whole seconds to keep the file human-editable.
type Config struct {
	// TargetDeviceName is a substring of the watched device's advertised name.
	TargetDeviceName string `yaml:"target_device_name"`
	// TargetDeviceAddress is the hardware address of the watched device.
	TargetDeviceAddress string `yaml:"target_device_address"`
	// DistanceThreshold is the RSSI cutoff in dBm separating near from far.
	DistanceThreshold int `yaml:"distance_threshold"`
	// ScanIntervalSeconds is the idle gap between scan cycles.
	// Zero means back-to-back scanning.
	ScanIntervalSeconds int `yaml:"scan_interval"`
	// GracePeriodSeconds is the confirmation delay before locking.
	GracePeriodSeconds int `yaml:"grace_period"`
	// ScanDurationSeconds is the length of one scan window.
	ScanDurationSeconds int `yaml:"scan_duration"`
	// LockEnabled toggles the lock command; monitoring continues either way.
	LockEnabled bool `yaml:"lock_enabled"`
}

const (
	// DefaultConfigFilename is the default filename for monitoring settings.
	DefaultConfigFilename = "proximity-lock.yaml"

	// DefaultDistanceThreshold is the default RSSI cutoff in dBm.
	DefaultDistanceThreshold = -70

	// DefaultScanIntervalSeconds is the default idle gap between cycles.
	// Zero: the next scan starts as soon as the previous one finishes.
	DefaultScanIntervalSeconds = 0

	// DefaultGracePeriodSeconds is the default confirmation delay.
	DefaultGracePeriodSeconds = 3

	// DefaultScanDurationSeconds is the default scan window length.
	DefaultScanDurationSeconds = 10

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration with stock settings and no target device.
func Default() *Config {
	return &Config{
		DistanceThreshold:   DefaultDistanceThreshold,
		ScanIntervalSeconds: DefaultScanIntervalSeconds,
		GracePeriodSeconds:  DefaultGracePeriodSeconds,
		ScanDurationSeconds: DefaultScanDurationSeconds,
		LockEnabled:         true,
	}
}

// Load reads configuration from the provided path.
// A missing file is created with defaults. An unreadable or malformed file
// degrades to defaults and reports the fault through the returned error;
// the returned Config is always usable so the monitor can keep running.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run: persist the defaults so the user has a file to edit.
			cfg := Default()
			_ = Save(path, cfg)

			return cfg, nil
		}

		return Default(), fmt.Errorf("read settings: %w", err)
	}

	// Unmarshal over a pre-filled struct so fields absent from the file
	// keep their default values.
	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return Default(), fmt.Errorf("unmarshal settings: %w", err)
	}

	Validate(cfg)

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate clamps nonsensical values back to defaults.
// It deliberately does not clamp scan_duration to scan_interval: a scan
// window longer than the interval simply runs cycles back-to-back, which
// is the configured intent.
func Validate(cfg *Config) {
	// A zero threshold is treated as unset; RSSI cutoffs are negative.
	if cfg.DistanceThreshold >= 0 {
		cfg.DistanceThreshold = DefaultDistanceThreshold
	}

	if cfg.ScanIntervalSeconds < 0 {
		cfg.ScanIntervalSeconds = DefaultScanIntervalSeconds
	}

	if cfg.GracePeriodSeconds < 0 {
		cfg.GracePeriodSeconds = DefaultGracePeriodSeconds
	}

	if cfg.ScanDurationSeconds <= 0 {
		cfg.ScanDurationSeconds = DefaultScanDurationSeconds
	}
}

// Target returns the watched-device specification from the settings.
func (c *Config) Target() proximity.TargetSpec {
	return proximity.TargetSpec{
		NameSubstring: c.TargetDeviceName,
		Address:       c.TargetDeviceAddress,
	}
}

// ScanInterval returns the idle gap between scan cycles.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalSeconds) * time.Second
}

// GracePeriod returns the confirmation delay before locking.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodSeconds) * time.Second
}

// ScanDuration returns the length of one scan window.
func (c *Config) ScanDuration() time.Duration {
	return time.Duration(c.ScanDurationSeconds) * time.Second
}
