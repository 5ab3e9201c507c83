package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/benaskins/specto/internal/audit"
	"github.com/benaskins/specto/internal/proc"
	"github.com/benaskins/specto/internal/tui"
)

// confirmAndKill runs the interactive kill flow for one process:
// prompt, SIGTERM on confirmation, outcome report, audit record.
func confirmAndKill(target proc.Process) error {
	confirmed, err := tui.Confirm(app.styles, target)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println(app.styles.Label.Render("Quit without killing process"))
		return nil
	}

	outcome, killErr := tui.Terminate(target.PID)
	auditKill(target, outcome, killErr)

	switch outcome {
	case tui.OutcomeNotPermitted:
		return errors.New("permission denied: you may need to run with sudo to kill this process")
	case tui.OutcomeAlreadyGone:
		return fmt.Errorf("process %d no longer exists", target.PID)
	case tui.OutcomeFailed:
		return fmt.Errorf("failed to kill process %d: %w", target.PID, killErr)
	}

	fmt.Println(app.styles.Good.Render(fmt.Sprintf("Successfully sent SIGTERM to process %d (%s)", target.PID, target.Name)))
	if outcome == tui.OutcomeStillRunning {
		fmt.Println(app.styles.Label.Render("Process is still running. You may need to use SIGKILL (kill -9) if it doesn't terminate."))
	} else {
		fmt.Println(app.styles.Good.Render(fmt.Sprintf("Process %d has been terminated", target.PID)))
	}
	return nil
}

// auditKill appends the attempt to the audit trail. Audit failures are
// reported but never fail the kill flow.
func auditKill(target proc.Process, outcome tui.Outcome, killErr error) {
	path := audit.DefaultPath()
	if path == "" {
		return
	}
	logger, err := audit.NewLogger(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit: %v\n", err)
		return
	}
	defer logger.Close()

	entry := audit.Entry{
		Action:  audit.ActionProcessKill,
		PID:     target.PID,
		Name:    target.Name,
		Signal:  "SIGTERM",
		Outcome: string(outcome),
	}
	if killErr != nil {
		entry.Error = killErr.Error()
	}
	if err := logger.Log(entry); err != nil {
		fmt.Fprintf(os.Stderr, "audit: %v\n", err)
	}
}
