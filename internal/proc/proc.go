// Package proc reads point-in-time process state from the running kernel:
// identity, lineage, and environment.
//
// Every call re-reads live kernel state. Two calls may observe different
// worlds; nothing here caches beyond immutable host facts (boot time,
// clock tick rate).
package proc

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	// ErrNotFound means no process with the requested pid exists, or it
	// vanished between directory walk and read.
	ErrNotFound = errors.New("process not found")

	// ErrPermissionDenied means the process exists but the kernel refused
	// access to the requested detail.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupported means this platform has no process backend.
	ErrUnsupported = errors.New("unsupported platform")
)

// Process is a snapshot of one process at read time.
type Process struct {
	PID     int
	PPID    int
	Name    string // kernel short name
	Cmdline string // full command line; empty for kernel threads
	User    string // login name, or the uid in decimal when unresolvable
	UID     int
	State   State
	VSZ     uint64    // virtual size in KiB, 0 when unavailable
	RSS     uint64    // resident set in KiB, 0 when unavailable
	Started time.Time // zero when boot time or tick rate is unknown
}

// Source reads live process state for one host.
type Source interface {
	// Get returns the process with the given pid.
	Get(pid int) (Process, error)

	// List returns every visible process, sorted by pid. Processes that
	// vanish or deny access mid-walk are skipped.
	List(ctx context.Context) ([]Process, error)

	// Environ returns the KEY=VALUE environment of the process in the
	// order the kernel reports it. Entries without '=' are dropped.
	Environ(pid int) ([]string, error)
}

// New returns the Source for the current platform.
func New(logger *slog.Logger) Source {
	if logger == nil {
		logger = slog.Default()
	}
	return newSource(logger.With("component", "proc"))
}
