//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
)

// SystemActor identifies the host and user running the process,
// recorded in the startup log for audit purposes.
type SystemActor struct {
	// Hostname is the machine name the monitor runs on.
	Hostname string
	// Username is the system user the monitor runs as.
	Username string
}

// DetectActor gathers host and user information for the audit trail.
func DetectActor() (*SystemActor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &SystemActor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
