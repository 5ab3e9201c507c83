//go:build unix

package tui

import (
	"errors"
	"os/exec"
	"testing"

	"golang.org/x/sys/unix"
)

func TestTerminateChild(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting child: %v", err)
	}

	// Reap concurrently so the child does not linger as a zombie, which
	// would still answer the liveness probe.
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	outcome, err := Terminate(cmd.Process.Pid)
	<-done
	if err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if outcome != OutcomeTerminated {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeTerminated)
	}
}

func TestTerminateMissingProcess(t *testing.T) {
	// Beyond any kernel's pid ceiling.
	outcome, err := Terminate(99999999)
	if outcome != OutcomeAlreadyGone {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeAlreadyGone)
	}
	if !errors.Is(err, unix.ESRCH) {
		t.Errorf("err = %v, want ESRCH", err)
	}
}
