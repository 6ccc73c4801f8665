package locker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupportedOS indicates the current OS has no known lock command.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Locker performs the screen lock side effect.
type Locker interface {
	Lock(ctx context.Context) error
}

// System locks the local session using common, built-in tools:
// - macOS:   `pmset displaysleepnow`, then best-effort `security lock-keychain`
// - Linux:   `loginctl lock-session`
// - Windows: `rundll32.exe user32.dll,LockWorkStation`
// Each is a single atomic external command; the OS takes over the rest.
type System struct{}

// Lock runs the platform lock command and waits for it to complete.
func (System) Lock(ctx context.Context) error {
	switch runtime.GOOS {
	case "darwin":
		if err := exec.CommandContext(ctx, "pmset", "displaysleepnow").Run(); err != nil {
			return fmt.Errorf("lock screen: %w", err)
		}

		// Keychain lock is extra hardening; its failure does not undo the
		// screen lock, so the error is ignored.
		_ = exec.CommandContext(ctx, "security", "lock-keychain").Run()

		return nil
	case "linux":
		if err := exec.CommandContext(ctx, "loginctl", "lock-session").Run(); err != nil {
			return fmt.Errorf("lock session: %w", err)
		}

		return nil
	case "windows":
		if err := exec.CommandContext(ctx, "rundll32.exe", "user32.dll,LockWorkStation").Run(); err != nil {
			return fmt.Errorf("lock workstation: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unsupported operating system: %s: %w", runtime.GOOS, ErrUnsupportedOS)
	}
}
