package setup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oshokin/proximity-lock/internal/config"
	"github.com/oshokin/proximity-lock/internal/domain/proximity"
	"github.com/oshokin/proximity-lock/internal/logger"
	"github.com/oshokin/proximity-lock/internal/scanner"
)

// Options controls the setup wizard behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Demo replaces the BLE scanner with scripted fake devices.
	Demo bool
}

var (
	// errNoDevices is returned when the scan window found nothing to pick from.
	errNoDevices = errors.New("no devices found")
	// errInvalidChoice is returned when the selection is not a listed number.
	errInvalidChoice = errors.New("invalid device selection")
)

// Run scans for nearby devices, prompts for a selection on stdin and saves
// the resulting target specification into the settings file.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "proximity-setup")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to load settings, starting from defaults", "error", err)
	}

	var s scanner.Scanner = scanner.NewBLEScanner()
	if opts.Demo {
		s = scanner.NewMockScanner()
	}

	if err := runWizard(ctx, cfg, s, os.Stdin, os.Stdout); err != nil {
		return err
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	fmt.Printf("Settings saved to %s\n", path)

	return nil
}

// runWizard performs the interactive selection against the provided streams.
// It mutates cfg in place and leaves persistence to the caller.
func runWizard(ctx context.Context, cfg *config.Config, s scanner.Scanner, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Scanning for nearby Bluetooth devices (%s)...\n", cfg.ScanDuration())

	readings, err := s.Scan(ctx, cfg.ScanDuration())
	if err != nil {
		return fmt.Errorf("scan devices: %w", err)
	}

	if len(readings) == 0 {
		return errNoDevices
	}

	fmt.Fprintf(out, "\nDiscovered devices (%d):\n", len(readings))

	for i, r := range readings {
		name := r.Name
		if name == "" {
			name = "[unnamed]"
		}

		fmt.Fprintf(out, "%2d. %s (%s), RSSI %d dBm\n", i+1, name, r.Address, r.RSSI)
	}

	reader := bufio.NewReader(in)

	fmt.Fprint(out, "\nSelect the device number to watch: ")

	choice, err := readInt(reader)
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}

	if choice < 1 || choice > len(readings) {
		return fmt.Errorf("%w: %d", errInvalidChoice, choice)
	}

	selected := readings[choice-1]
	cfg.TargetDeviceName = selected.Name
	cfg.TargetDeviceAddress = selected.Address

	fmt.Fprintf(out, "Selected: %s (%s), current RSSI %d dBm\n",
		displayName(selected), selected.Address, selected.RSSI)

	// An empty answer keeps the current threshold.
	fmt.Fprintf(out, "RSSI threshold in dBm [%d]: ", cfg.DistanceThreshold)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read threshold: %w", err)
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		threshold, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("parse threshold: %w", err)
		}

		cfg.DistanceThreshold = threshold
	}

	config.Validate(cfg)

	return nil
}

// readInt reads one line and parses it as a decimal integer.
func readInt(reader *bufio.Reader) (int, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(line))
}

// displayName returns the device name or "[unnamed]" if empty.
func displayName(r proximity.Reading) string {
	if r.Name == "" {
		return "[unnamed]"
	}

	return r.Name
}
