package setup

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/proximity-lock/internal/config"
	"github.com/oshokin/proximity-lock/internal/domain/proximity"
)

// listScanner returns a fixed snapshot for wizard tests.
type listScanner struct {
	readings []proximity.Reading
}

// Scan returns the fixed snapshot.
func (s *listScanner) Scan(context.Context, time.Duration) ([]proximity.Reading, error) {
	return s.readings, nil
}

func wizardReadings() []proximity.Reading {
	return []proximity.Reading{
		{Address: "AA:BB:CC:DD:EE:01", Name: "Oleg's iPhone", RSSI: -52},
		{Address: "AA:BB:CC:DD:EE:02", RSSI: -68},
	}
}

// TestRunWizard_SelectionAndThreshold walks a full selection with a custom
// threshold and checks the settings mutation.
func TestRunWizard_SelectionAndThreshold(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	in := strings.NewReader("1\n-65\n")
	out := new(bytes.Buffer)

	err := runWizard(context.Background(), cfg, &listScanner{readings: wizardReadings()}, in, out)
	require.NoError(t, err)

	require.Equal(t, "Oleg's iPhone", cfg.TargetDeviceName)
	require.Equal(t, "AA:BB:CC:DD:EE:01", cfg.TargetDeviceAddress)
	require.Equal(t, -65, cfg.DistanceThreshold)
	require.Contains(t, out.String(), "Oleg's iPhone")
}

// TestRunWizard_DefaultThreshold keeps the current threshold on an empty answer
// and handles unnamed devices.
func TestRunWizard_DefaultThreshold(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	in := strings.NewReader("2\n\n")
	out := new(bytes.Buffer)

	err := runWizard(context.Background(), cfg, &listScanner{readings: wizardReadings()}, in, out)
	require.NoError(t, err)

	require.Empty(t, cfg.TargetDeviceName)
	require.Equal(t, "AA:BB:CC:DD:EE:02", cfg.TargetDeviceAddress)
	require.Equal(t, config.DefaultDistanceThreshold, cfg.DistanceThreshold)
	require.Contains(t, out.String(), "[unnamed]")
}

// TestRunWizard_InvalidSelection rejects out-of-range numbers.
func TestRunWizard_InvalidSelection(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	in := strings.NewReader("7\n")

	err := runWizard(context.Background(), cfg, &listScanner{readings: wizardReadings()}, in, new(bytes.Buffer))
	require.ErrorIs(t, err, errInvalidChoice)
}

// TestRunWizard_NoDevices reports an empty scan window.
func TestRunWizard_NoDevices(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	err := runWizard(context.Background(), cfg, &listScanner{}, strings.NewReader(""), new(bytes.Buffer))
	require.ErrorIs(t, err, errNoDevices)
}
