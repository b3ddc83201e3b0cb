package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another server process is found.
var ErrAlreadyRunning = errors.New("another timedeck-server is already running")

// processLister enumerates running processes.
type processLister func() ([]ps.Process, error)

// ensureSingleInstance fails when another process runs the same executable.
func ensureSingleInstance() error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	peers, err := findPeers(ps.Processes, filepath.Base(self), os.Getpid())
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	if len(peers) > 0 {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, peers[0])
	}

	return nil
}

// findPeers returns the pids of processes named like executable, except self.
// Names are compared without the Windows extension and case-insensitively.
func findPeers(list processLister, executable string, self int) ([]int, error) {
	processList, err := list()
	if err != nil {
		return nil, err
	}

	want := normaliseExecutable(executable)

	var peers []int

	for _, process := range processList {
		if process.Pid() == self {
			continue
		}

		if normaliseExecutable(process.Executable()) != want {
			continue
		}

		peers = append(peers, process.Pid())
	}

	return peers, nil
}

func normaliseExecutable(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, ".exe"))
}
