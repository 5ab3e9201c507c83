package proc

// State is a single-character kernel process state code.
type State string

// States as reported by the kernel scheduler.
const (
	StateRunning     State = "R"
	StateSleeping    State = "S"
	StateDiskSleep   State = "D"
	StateZombie      State = "Z"
	StateStopped     State = "T"
	StateTracingStop State = "t"
	StateIdle        State = "I"
	StateWaking      State = "W"
	StateDead        State = "X"
	StateWakeKill    State = "K"
	StateParked      State = "P"
	StateUnknown     State = "?"
)

// ParseState maps a kernel state character onto the closed State set.
// Unrecognized codes map to StateUnknown.
func ParseState(c byte) State {
	switch s := State(string(c)); s {
	case StateRunning, StateSleeping, StateDiskSleep, StateZombie,
		StateStopped, StateTracingStop, StateIdle, StateWaking,
		StateDead, StateWakeKill, StateParked:
		return s
	default:
		return StateUnknown
	}
}

// darwinState maps the numeric BSD process status codes (SIDL through
// SZOMB) onto the shared State set.
func darwinState(stat int) State {
	switch stat {
	case 1:
		return StateIdle
	case 2:
		return StateRunning
	case 3:
		return StateSleeping
	case 4:
		return StateStopped
	case 5:
		return StateZombie
	default:
		return StateUnknown
	}
}

// Description returns a human-readable name for the state.
func (s State) Description() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSleeping:
		return "sleeping"
	case StateDiskSleep:
		return "waiting on disk"
	case StateZombie:
		return "zombie"
	case StateStopped:
		return "stopped"
	case StateTracingStop:
		return "tracing stop"
	case StateIdle:
		return "idle"
	case StateWaking:
		return "waking"
	case StateDead:
		return "dead"
	case StateWakeKill:
		return "wakekill"
	case StateParked:
		return "parked"
	default:
		return "unknown"
	}
}

func (s State) String() string {
	return string(s)
}
