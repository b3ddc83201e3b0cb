// Package actor identifies who asked the server to change something.
package actor

import (
	"fmt"
	"os"
	"os/user"
)

// Actor is the host and user behind a request.
type Actor struct {
	Hostname string
	Username string
}

// String renders the actor as user@host.
func (a *Actor) String() string {
	if a == nil {
		return "unknown"
	}

	return a.Username + "@" + a.Hostname
}

// Detect gathers host and user information for the current process.
func Detect() (*Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	current, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &Actor{Hostname: hostname, Username: current.Username}, nil
}
