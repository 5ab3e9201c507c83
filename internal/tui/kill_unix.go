//go:build unix

package tui

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/benaskins/specto/internal/proc"
)

// Terminate sends SIGTERM to pid, allows a short grace period, then
// probes whether the process survived. The error is non-nil only when
// the signal could not be delivered.
func Terminate(pid int) (Outcome, error) {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		switch {
		case errors.Is(err, unix.EPERM):
			return OutcomeNotPermitted, err
		case errors.Is(err, unix.ESRCH):
			return OutcomeAlreadyGone, err
		}
		return OutcomeFailed, err
	}

	time.Sleep(100 * time.Millisecond)

	if proc.Alive(pid) {
		return OutcomeStillRunning, nil
	}
	return OutcomeTerminated, nil
}
