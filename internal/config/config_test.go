package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoad_MissingFileCreatesDefaults ensures a first run materialises the
// default settings file and returns stock values.
func TestLoad_MissingFileCreatesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultDistanceThreshold, cfg.DistanceThreshold)
	require.Equal(t, DefaultScanDurationSeconds, cfg.ScanDurationSeconds)
	require.True(t, cfg.LockEnabled)

	// File was created for the user to edit.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := Default()
	cfg.TargetDeviceName = "iPhone"
	cfg.TargetDeviceAddress = "AA:BB:CC:DD:EE:FF"
	cfg.DistanceThreshold = -65
	cfg.ScanIntervalSeconds = 2
	cfg.LockEnabled = false

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.TargetDeviceName, loaded.TargetDeviceName)
	require.Equal(t, cfg.TargetDeviceAddress, loaded.TargetDeviceAddress)
	require.Equal(t, cfg.DistanceThreshold, loaded.DistanceThreshold)
	require.Equal(t, 2*time.Second, loaded.ScanInterval())
	require.False(t, loaded.LockEnabled)
}

// TestLoad_PartialFileKeepsDefaults ensures fields absent from the file keep
// their default values instead of zeroing out.
func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, os.WriteFile(path, []byte("target_device_name: iPhone\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "iPhone", cfg.TargetDeviceName)
	require.Equal(t, DefaultDistanceThreshold, cfg.DistanceThreshold)
	require.Equal(t, DefaultGracePeriodSeconds, cfg.GracePeriodSeconds)
	require.True(t, cfg.LockEnabled)
}

// TestLoad_MalformedFileDegradesToDefaults ensures a broken file reports the
// fault but still yields a usable configuration.
func TestLoad_MalformedFileDegradesToDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	cfg, err := Load(path)
	require.Error(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, DefaultDistanceThreshold, cfg.DistanceThreshold)
	require.True(t, cfg.LockEnabled)
}

// TestValidate clamps nonsense values while preserving the scan_duration
// versus scan_interval relationship as configured.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		DistanceThreshold:   10,
		ScanIntervalSeconds: -1,
		GracePeriodSeconds:  -5,
		ScanDurationSeconds: 0,
	}

	Validate(cfg)

	require.Equal(t, DefaultDistanceThreshold, cfg.DistanceThreshold)
	require.Equal(t, DefaultScanIntervalSeconds, cfg.ScanIntervalSeconds)
	require.Equal(t, DefaultGracePeriodSeconds, cfg.GracePeriodSeconds)
	require.Equal(t, DefaultScanDurationSeconds, cfg.ScanDurationSeconds)

	// A scan window longer than the interval is legal: cycles just run
	// back-to-back.
	cfg = &Config{
		DistanceThreshold:   -70,
		ScanIntervalSeconds: 1,
		GracePeriodSeconds:  3,
		ScanDurationSeconds: 10,
	}

	Validate(cfg)

	require.Equal(t, 1, cfg.ScanIntervalSeconds)
	require.Equal(t, 10, cfg.ScanDurationSeconds)
}

// TestTarget maps settings fields onto the domain target specification.
func TestTarget(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.False(t, cfg.Target().HasCriteria())

	cfg.TargetDeviceName = "iPhone"
	spec := cfg.Target()
	require.True(t, spec.HasCriteria())
	require.Equal(t, "iPhone", spec.NameSubstring)
}
