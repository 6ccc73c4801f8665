//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning indicates another instance of this executable is active.
var ErrAlreadyRunning = errors.New("already running")

// EnsureSingleInstance returns an error when a process with the same
// executable name is already running. Two monitors polling one Bluetooth
// adapter would interleave scan windows and confuse each other's episodes.
func EnsureSingleInstance() error {
	executablePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	executableName := filepath.Base(executablePath)

	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != executableName {
			continue
		}

		return fmt.Errorf("%s (pid %d): %w", executableName, process.Pid(), ErrAlreadyRunning)
	}

	return nil
}
