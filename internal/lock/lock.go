// Package lock keeps two loader runs from writing at the same time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrLocked is returned when another run holds the lock file
var ErrLocked = errors.New("loader already running (lock file exists)")

// Lock is a held lock file containing the owner's pid
type Lock struct {
	path string
}

// Acquire creates the lock file at path. Creation is exclusive, so two
// processes racing for it cannot both succeed. A lock left behind by a
// process that no longer exists is removed and taken over once.
func Acquire(path string) (*Lock, error) {
	l, err := create(path)
	if !errors.Is(err, ErrLocked) {
		return l, err
	}

	owner := readOwner(path)
	if owner <= 0 || processAlive(owner) {
		return nil, err
	}
	if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
		return nil, fmt.Errorf("failed to remove stale lock file: %w", rmErr)
	}
	return create(path)
}

func create(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		owner, _ := os.ReadFile(path)
		return nil, fmt.Errorf("%w: %s held by pid %s", ErrLocked, path, strings.TrimSpace(string(owner)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d", os.Getpid()); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}
	return &Lock{path: path}, nil
}

// readOwner returns the pid stored in the lock file, or 0 when it is
// missing or not yet written.
func readOwner(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// Release removes the lock file
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}
