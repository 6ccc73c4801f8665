// Package scanner acquires snapshots of nearby Bluetooth devices.
//
// The Scanner interface exposes a single synchronous bounded scan call that
// returns a completed set of readings, decoupling the decision logic in the
// monitor from the callback-driven transport underneath. BLEScanner is the
// real implementation on tinygo.org/x/bluetooth; MockScanner fakes a handful
// of fluctuating devices for demo runs without Bluetooth hardware.
package scanner
