package render

import (
	"fmt"
	"io"

	"github.com/benaskins/specto/internal/netstat"
	"github.com/benaskins/specto/internal/proc"
)

// PortReport couples the connections resolved for a port with whatever
// owning process details the caller could fetch. A connection whose
// owner is missing from Owners renders without a process block.
type PortReport struct {
	Port   int
	Conns  []netstat.Connection
	Owners map[int]proc.Process
}

func (r PortReport) owner(c netstat.Connection) (proc.Process, bool) {
	if !c.HasOwner() {
		return proc.Process{}, false
	}
	p, ok := r.Owners[c.PID]
	return p, ok
}

// hasWarning reports whether a connection's owner trips a security
// warning: root holding a non-system port, or a zombie holding any.
func hasWarning(c netstat.Connection, owner proc.Process) bool {
	if owner.UID == 0 && c.LocalPort >= 1024 {
		return true
	}
	return owner.State == proc.StateZombie
}

// Port writes the per-connection report for one port.
func Port(w io.Writer, st Styles, r PortReport) {
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Port %d Connections (%d found)", r.Port, len(r.Conns))))

	for i, c := range r.Conns {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.Label.Render(fmt.Sprintf("Connection #%d:", i+1)))
		fmt.Fprintf(w, "  Protocol: %s\n", c.Proto)
		fmt.Fprintf(w, "  State: %s\n", c.State)

		local := c.LocalAddr
		if local == "" {
			local = "*"
		}
		fmt.Fprintf(w, "  Local: %s:%d\n", local, c.LocalPort)
		if c.RemotePort > 0 {
			fmt.Fprintf(w, "  Remote: %s:%d\n", c.RemoteAddr, c.RemotePort)
		}

		owner, ok := r.owner(c)
		switch {
		case ok:
			fmt.Fprintf(w, "%s%s (PID: %d)\n", st.Good.Render("  Process: "), owner.Name, owner.PID)
			fmt.Fprintf(w, "  User: %s\n", owner.User)
			if owner.Cmdline != "" {
				fmt.Fprintf(w, "  Command: %s\n", owner.Cmdline)
			}
			if hasWarning(c, owner) {
				fmt.Fprintln(w, st.Warn.Render("Warning: Process running with elevated privileges (root)"))
			}
		case !c.HasOwner():
			fmt.Fprintln(w, "  Process: Unknown")
		}
	}
}

// PortShort writes one line per connection.
func PortShort(w io.Writer, r PortReport) {
	for _, c := range r.Conns {
		if owner, ok := r.owner(c); ok {
			fmt.Fprintf(w, "Port %d: %s[%d] by %s (%s)\n", r.Port, owner.Name, owner.PID, owner.User, c.State)
		} else if !c.HasOwner() {
			fmt.Fprintf(w, "Port %d: Unknown process (%s)\n", r.Port, c.State)
		}
	}
}

type portDoc struct {
	Port            int       `json:"port"`
	ConnectionCount int       `json:"connection_count"`
	Connections     []connDoc `json:"connections"`
}

type connDoc struct {
	Protocol      string    `json:"protocol"`
	State         string    `json:"state"`
	LocalAddress  string    `json:"local_address"`
	LocalPort     int       `json:"local_port"`
	RemoteAddress string    `json:"remote_address"`
	RemotePort    int       `json:"remote_port"`
	Process       *ownerDoc `json:"process,omitempty"`
}

type ownerDoc struct {
	PID     int    `json:"pid"`
	Name    string `json:"name"`
	User    string `json:"user"`
	Cmdline string `json:"cmdline"`
}

// PortJSON writes the port report as a JSON document.
func PortJSON(w io.Writer, r PortReport) error {
	doc := portDoc{
		Port:            r.Port,
		ConnectionCount: len(r.Conns),
		Connections:     make([]connDoc, 0, len(r.Conns)),
	}
	for _, c := range r.Conns {
		cd := connDoc{
			Protocol:      c.Proto,
			State:         c.State,
			LocalAddress:  c.LocalAddr,
			LocalPort:     c.LocalPort,
			RemoteAddress: c.RemoteAddr,
			RemotePort:    c.RemotePort,
		}
		if owner, ok := r.owner(c); ok {
			cd.Process = &ownerDoc{PID: owner.PID, Name: owner.Name, User: owner.User, Cmdline: owner.Cmdline}
		}
		doc.Connections = append(doc.Connections, cd)
	}
	return JSON(w, doc)
}

// PortWarnings writes only the security findings for a port.
func PortWarnings(w io.Writer, st Styles, r PortReport) {
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Port %d - Security Warnings", r.Port)))

	found := false
	warn := func(format string, args ...any) {
		found = true
		fmt.Fprintln(w, st.Warn.Render(fmt.Sprintf("Warning: "+format, args...)))
	}

	for _, c := range r.Conns {
		owner, ok := r.owner(c)
		if !ok {
			continue
		}
		if owner.UID == 0 && c.LocalPort >= 1024 {
			warn("Process '%s' (PID %d) running as root on non-system port", owner.Name, owner.PID)
		}
		if owner.State == proc.StateZombie {
			warn("Zombie process '%s' (PID %d) holding port", owner.Name, owner.PID)
		}
	}

	if len(r.Conns) > 1 {
		warn("Multiple processes (%d) listening on port %d", len(r.Conns), r.Port)
	}

	if !found {
		fmt.Fprintln(w, st.Good.Render(fmt.Sprintf("No warnings found for port %d", r.Port)))
	}
}
