// Package setup implements the first-run device selection wizard.
//
// It scans once, lists the discovered devices, and writes the chosen target
// and an optional RSSI threshold into the settings file. The monitor never
// depends on how the target specification was derived.
package setup
