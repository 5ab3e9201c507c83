// Package netstat answers "what process owns this port" from live
// kernel state, point-in-time: a query scans the host's socket tables
// (or delegates to lsof where no table is readable) and correlates
// matches with owning processes.
package netstat

import (
	"context"
	"errors"
	"log/slog"
)

// ErrUnsupported means this platform has no connection backend, or the
// delegate binary it needs is not installed.
var ErrUnsupported = errors.New("unsupported platform")

// Connection is one socket matching a port query.
type Connection struct {
	Proto      string // TCP, TCP6, UDP
	State      string // LISTEN, ESTABLISHED, ... or UNKNOWN
	LocalAddr  string
	LocalPort  int // always the queried port
	RemoteAddr string
	RemotePort int
	PID        int // owning process, 0 when unresolved
}

// HasOwner reports whether the owning process was resolved.
func (c Connection) HasOwner() bool {
	return c.PID > 0
}

// Resolver resolves ports to connections for one host.
type Resolver interface {
	// Resolve returns every connection whose local port matches. An
	// empty result with a nil error means nothing is using the port.
	Resolve(ctx context.Context, port int) ([]Connection, error)
}

// New returns the Resolver for the current platform.
func New(logger *slog.Logger) Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return newResolver(logger.With("component", "netstat"))
}

// tcpStates maps the kernel's numeric socket states to their names.
var tcpStates = map[int]string{
	1:  "ESTABLISHED",
	2:  "SYN_SENT",
	3:  "SYN_RECV",
	4:  "FIN_WAIT1",
	5:  "FIN_WAIT2",
	6:  "TIME_WAIT",
	7:  "CLOSE",
	8:  "CLOSE_WAIT",
	9:  "LAST_ACK",
	10: "LISTEN",
	11: "CLOSING",
}

// stateLabel names a kernel socket state code; unknown codes label
// UNKNOWN.
func stateLabel(code int) string {
	if s, ok := tcpStates[code]; ok {
		return s
	}
	return "UNKNOWN"
}
