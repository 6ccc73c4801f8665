// Package common holds helpers shared by several services.
//
// It provides detection of the current system actor (hostname/username) for
// audit logging and a single-instance guard so two monitors never race for
// the same Bluetooth adapter.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
