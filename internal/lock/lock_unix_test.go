//go:build unix

package lock

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

// exitedPid starts a short-lived child and returns its pid after it exits
func exitedPid(t *testing.T) int {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^$")
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to run child process: %v", err)
	}
	return cmd.ProcessState.Pid()
}

func TestStaleLockIsTakenOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loader.lock")
	dead := exitedPid(t)
	if err := os.WriteFile(path, []byte(strconv.Itoa(dead)), 0o644); err != nil {
		t.Fatalf("Failed to seed lock file: %v", err)
	}

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Expected stale lock from pid %d to be taken over, got %v", dead, err)
	}
	defer l.Release()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read lock file: %v", err)
	}
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("Expected pid %d in lock file, got %q", os.Getpid(), data)
	}
}

func TestLiveOrUnreadableOwnerKeepsLock(t *testing.T) {
	tests := []struct {
		name  string
		owner string
	}{
		{"live pid", strconv.Itoa(os.Getppid())},
		{"empty file", ""},
		{"garbage", "not a pid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "loader.lock")
			if err := os.WriteFile(path, []byte(tt.owner), 0o644); err != nil {
				t.Fatalf("Failed to seed lock file: %v", err)
			}

			if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
				t.Fatalf("Expected ErrLocked, got %v", err)
			}
			data, _ := os.ReadFile(path)
			if string(data) != tt.owner {
				t.Errorf("Expected lock file to be untouched, got %q", data)
			}
		})
	}
}
