package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/oshokin/proximity-lock/internal/domain/proximity"
)

// BLEScanner scans for Bluetooth Low Energy advertisements using the
// platform default adapter. Callback results are collected into a
// per-window map keyed by address, so each device appears once with its
// latest RSSI.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	enabled bool
}

// NewBLEScanner creates a scanner for the platform default adapter.
func NewBLEScanner() *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
	}
}

// Scan runs a callback scan for the given window and returns the collected
// snapshot, strongest signal first. The scan stops early when ctx is canceled.
func (s *BLEScanner) Scan(ctx context.Context, window time.Duration) ([]proximity.Reading, error) {
	if !s.enabled {
		if err := s.adapter.Enable(); err != nil {
			return nil, fmt.Errorf("enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
		}

		s.enabled = true
	}

	var mu sync.Mutex

	seen := make(map[string]proximity.Reading)

	// adapter.Scan blocks until StopScan, so it runs in its own goroutine
	// while this one watches the window and the context.
	scanDone := make(chan error, 1)

	go func() {
		scanDone <- s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			address := result.Address.String()

			mu.Lock()
			seen[address] = proximity.Reading{
				Address: address,
				// LocalName is frequently empty; an unnamed reading is
				// still useful for address-based matching.
				Name: result.LocalName(),
				RSSI: result.RSSI,
			}
			mu.Unlock()
		})
	}()

	timer := time.NewTimer(window)
	defer timer.Stop()

	var scanErr error

	select {
	case <-ctx.Done():
		scanErr = ctx.Err()
	case err := <-scanDone:
		// The scan ended before the window elapsed.
		if err != nil {
			return nil, fmt.Errorf("BLE scan: %w", err)
		}

		scanDone = nil
	case <-timer.C:
	}

	_ = s.adapter.StopScan()

	// Wait for the scan goroutine so the callback cannot outlive this call.
	if scanDone != nil {
		if err := <-scanDone; err != nil && scanErr == nil {
			scanErr = fmt.Errorf("BLE scan: %w", err)
		}
	}

	if scanErr != nil {
		return nil, scanErr
	}

	mu.Lock()
	defer mu.Unlock()

	return snapshotToReadings(seen), nil
}
