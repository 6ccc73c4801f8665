// Package monitor implements the proximity decision engine.
//
// It runs a single sequential loop: scan for the target device, classify the
// reading against the RSSI threshold, and on a sustained "far" verdict wait
// out a grace period, re-check once, and only then lock the screen. One
// departure episode locks at most once; a confirmed "near" observation
// re-arms the loop for the next episode. Scan and lock failures are logged
// and recovered, never fatal: the monitor is meant to run unattended.
package monitor
