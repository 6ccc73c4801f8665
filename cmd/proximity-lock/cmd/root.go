package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/proximity-lock/internal/config"
	"github.com/oshokin/proximity-lock/internal/logger"
	"github.com/oshokin/proximity-lock/internal/service/monitor"
	"github.com/oshokin/proximity-lock/internal/service/setup"
	"github.com/oshokin/proximity-lock/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// setupMode runs the device selection wizard instead of the monitor.
	setupMode bool
	// demoMode replaces the BLE scanner with fake devices.
	demoMode bool
	// logLevel sets the minimum log level for console output.
	logLevel string
	// noLock prevents the lock command from firing, for debugging.
	noLock bool

	// rootCmd represents the base command for monitoring device proximity.
	rootCmd = &cobra.Command{
		Use:   "proximity-lock",
		Short: "Lock the screen when your phone walks away.",
		Long: `Background service that watches the signal strength of a designated
Bluetooth device and locks this machine's screen when the device leaves
proximity for a sustained period.

Scans repeatedly, classifies each reading against an RSSI threshold, and on a
sustained "far" verdict waits out a grace period, re-checks once, and only then
locks. One departure episode locks at most once; the device returning re-arms
the next episode. Scan failures are logged and retried, never fatal.

Run with --setup first to pick the device to watch; settings live in a
human-editable YAML file. Stop with an interrupt signal.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			} else {
				logger.Warnf(ctx, "Unknown log level %q, using %q", logLevel, logger.Level())
			}

			if setupMode {
				setupOptions := &setup.Options{
					ConfigPath: configPath,
					Demo:       demoMode,
				}

				return setup.Run(ctx, setupOptions)
			}

			monitorOptions := &monitor.Options{
				ConfigPath: configPath,
				NoLock:     noLock,
				Demo:       demoMode,
			}

			return monitor.Run(ctx, monitorOptions)
		},
	}
)

// Execute runs the proximity-lock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&setupMode, "setup", false, "run the device selection wizard and exit")
	rootCmd.Flags().BoolVar(&demoMode, "demo", false, "use fake devices instead of Bluetooth hardware")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")

	// Hidden debug flag to observe decisions without locking the screen.
	rootCmd.Flags().BoolVar(&noLock, "no-lock", false, "skip the lock command for debugging")

	err := rootCmd.Flags().MarkHidden("no-lock")
	if err != nil {
		panic(err)
	}
}
