package scanner

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/oshokin/proximity-lock/internal/domain/proximity"
)

// mockDevice is one fake device with a sinusoidally fluctuating signal.
type mockDevice struct {
	address   string
	name      string
	baseRSSI  float64
	phase     float64
	amplitude float64
}

// MockScanner fakes a small neighborhood of Bluetooth devices for demo runs
// without hardware. Each Scan advances a shared clock so signals drift
// between calls; an "iPhone 15 Pro" is always present as a plausible target.
type MockScanner struct {
	devices []mockDevice
	tick    float64
}

// mockDeviceNames seeds the fake neighborhood. Some entries advertise no name,
// which is realistic for BLE.
var mockDeviceNames = []string{
	"iPhone 15 Pro",
	"Galaxy Buds Pro",
	"AirPods Pro",
	"MacBook Air",
	"Apple Watch",
	"",
	"",
}

// NewMockScanner creates a mock scanner with a fixed set of fake devices.
func NewMockScanner() *MockScanner {
	devices := make([]mockDevice, len(mockDeviceNames))
	for i, name := range mockDeviceNames {
		devices[i] = mockDevice{
			address:   randomMAC(),
			name:      name,
			baseRSSI:  -45 - rand.Float64()*40, // -45 to -85 dBm
			phase:     rand.Float64() * 2 * math.Pi,
			amplitude: 3 + rand.Float64()*8, // 3-11 dBm fluctuation
		}
	}

	return &MockScanner{devices: devices}
}

// Scan returns the fake neighborhood with drifted signal readings.
// The window is honored only as an upper bound on the context wait;
// fake results are available immediately.
func (s *MockScanner) Scan(ctx context.Context, _ time.Duration) ([]proximity.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.tick += 1.0

	seen := make(map[string]proximity.Reading, len(s.devices))
	for _, d := range s.devices {
		rssi := d.baseRSSI + d.amplitude*math.Sin(s.tick*0.5+d.phase) + (rand.Float64()-0.5)*4

		seen[d.address] = proximity.Reading{
			Address: d.address,
			Name:    d.name,
			RSSI:    int16(rssi),
		}
	}

	return snapshotToReadings(seen), nil
}

// randomMAC produces a random hardware address for fake devices.
func randomMAC() string {
	const hexDigits = "0123456789ABCDEF"

	b := make([]byte, 0, 17)

	for i := 0; i < 6; i++ {
		if i > 0 {
			b = append(b, ':')
		}

		b = append(b, hexDigits[rand.Intn(16)], hexDigits[rand.Intn(16)])
	}

	return string(b)
}
