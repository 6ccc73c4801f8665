// Package proximity contains core domain types for the proximity decision logic.
//
// It defines Reading (a single device observation), TargetSpec (which device is
// watched) and the pure Resolve and Classify functions that turn a scan
// snapshot into a near/far verdict.
package proximity
