//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/hydration-clock/internal/api/grpc/clock"
)

// DetectActor gathers host and user information sent along with control calls.
func DetectActor() (clock.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return clock.Actor{}, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return clock.Actor{}, fmt.Errorf("current user: %w", err)
	}

	return clock.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
