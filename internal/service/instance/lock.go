// Package instance keeps a single clockd running per lock file.
//
// The lock is a file holding the owner's PID. A file left behind by a process
// that no longer exists, or whose PID now belongs to a different program, is
// treated as stale and replaced.
package instance

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when a live process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

const lockFilePermissions = 0o600

// finder looks a process up by PID; nil, nil means it does not exist.
type finder func(pid int) (ps.Process, error)

// Lock is a held instance lock.
type Lock struct {
	path string
	pid  int
}

// Acquire takes the lock at path for the current process.
func Acquire(path string) (*Lock, error) {
	return acquire(path, os.Getpid(), ps.FindProcess)
}

func acquire(path string, pid int, find finder) (*Lock, error) {
	// Two attempts: the second follows removal of a stale file.
	for range 2 {
		err := create(path, pid)
		if err == nil {
			return &Lock{path: path, pid: pid}, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		owner, err := readPID(path)
		if err == nil && owner != pid {
			alive, err := isSameProgram(owner, pid, find)
			if err != nil {
				return nil, fmt.Errorf("look up lock owner %d: %w", owner, err)
			}

			if alive {
				return nil, fmt.Errorf("%w (pid %d, lock %s)", ErrAlreadyRunning, owner, path)
			}
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale lock file: %w", err)
		}
	}

	return nil, fmt.Errorf("%w: lock %s keeps reappearing", ErrAlreadyRunning, path)
}

// Release removes the lock file if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	owner, err := readPID(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if owner != l.pid {
		return nil
	}

	return os.Remove(l.path)
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

func create(path string, pid int) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, lockFilePermissions)
	if err != nil {
		return err
	}

	_, writeErr := file.WriteString(strconv.Itoa(pid))
	closeErr := file.Close()

	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)

		return err
	}

	return nil
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse lock file: %w", err)
	}

	return pid, nil
}

// isSameProgram reports whether owner is alive and runs the same executable as self.
func isSameProgram(owner, self int, find finder) (bool, error) {
	process, err := find(owner)
	if err != nil {
		return false, err
	}

	if process == nil {
		return false, nil
	}

	current, err := find(self)
	if err != nil || current == nil {
		// Without our own name any live owner counts.
		return true, nil //nolint:nilerr // Lookup of self is advisory.
	}

	return process.Executable() == current.Executable(), nil
}
