// Package locker performs the screen lock side effect.
//
// It shells out to the OS built-in lock command for the current platform.
// The command is a single atomic external call, safe to repeat: locking an
// already locked session is harmless.
package locker
