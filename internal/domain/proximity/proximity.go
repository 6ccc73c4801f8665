package proximity

import "strings"

// Reading is a single observation of a nearby device taken during one scan window.
type Reading struct {
	// Address is the hardware address of the device.
	Address string
	// Name is the advertised device name. It is frequently empty for BLE devices.
	Name string
	// RSSI is the received signal strength in dBm. Closer to zero means nearer.
	RSSI int16
}

// TargetSpec identifies the watched device. At least one field must be set
// for a match to ever succeed.
type TargetSpec struct {
	// NameSubstring matches devices whose advertised name contains it,
	// case-insensitively.
	NameSubstring string
	// Address matches a device hardware address exactly, case-insensitively.
	Address string
}

// HasCriteria reports whether the spec can ever match a device.
func (s TargetSpec) HasCriteria() bool {
	return s.NameSubstring != "" || s.Address != ""
}

// Proximity is the verdict for a single reading against a threshold.
type Proximity int

const (
	// Near means the device signal is at or above the threshold.
	Near Proximity = iota
	// Far means the device signal dropped below the threshold.
	Far
)

// String returns a human-readable verdict name.
func (p Proximity) String() string {
	if p == Far {
		return "far"
	}

	return "near"
}

// Resolve returns the first reading matching the spec.
// A candidate matches when the name substring is set and the candidate's
// non-empty name contains it, or when the address is set and equals the
// candidate's address. Both checks are case-insensitive.
// The second return value is false when nothing matches; an empty or
// non-matching snapshot is an expected outcome, not an error.
func Resolve(readings []Reading, spec TargetSpec) (Reading, bool) {
	for _, candidate := range readings {
		if spec.NameSubstring != "" && candidate.Name != "" &&
			strings.Contains(strings.ToLower(candidate.Name), strings.ToLower(spec.NameSubstring)) {
			return candidate, true
		}

		if spec.Address != "" && strings.EqualFold(spec.Address, candidate.Address) {
			return candidate, true
		}
	}

	return Reading{}, false
}

// Classify compares a reading against the threshold.
// The verdict is Far only on a strict drop below the threshold; a reading
// exactly equal to it counts as Near.
func Classify(r Reading, threshold int) Proximity {
	if int(r.RSSI) < threshold {
		return Far
	}

	return Near
}
