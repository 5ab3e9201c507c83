package tui

// Outcome describes the result of a termination attempt.
type Outcome string

const (
	// OutcomeTerminated means the process was gone after the grace
	// period.
	OutcomeTerminated Outcome = "terminated"
	// OutcomeStillRunning means the signal was delivered but the
	// process survived the grace period.
	OutcomeStillRunning Outcome = "still_running"
	// OutcomeNotPermitted means the caller may not signal the process.
	OutcomeNotPermitted Outcome = "not_permitted"
	// OutcomeAlreadyGone means the process did not exist.
	OutcomeAlreadyGone Outcome = "already_gone"
	// OutcomeFailed covers any other delivery failure.
	OutcomeFailed Outcome = "failed"
)
