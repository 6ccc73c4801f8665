// Package config defines the monitoring settings for proximity-lock and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the target device specification, the RSSI threshold
// and the scan/grace timing knobs. Load never fails hard: a broken or missing
// file degrades to defaults so the monitor can keep running unattended.
package config
