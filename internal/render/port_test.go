package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/benaskins/specto/internal/netstat"
	"github.com/benaskins/specto/internal/proc"
)

func sampleReport() PortReport {
	return PortReport{
		Port: 8080,
		Conns: []netstat.Connection{
			{Proto: "TCP", State: "LISTEN", LocalAddr: "127.0.0.1", LocalPort: 8080, PID: 812},
			{Proto: "TCP6", State: "ESTABLISHED", LocalAddr: "::1", LocalPort: 8080,
				RemoteAddr: "::1", RemotePort: 51000},
		},
		Owners: map[int]proc.Process{
			812: {PID: 812, Name: "node", User: "alice", UID: 1000, State: proc.StateSleeping, Cmdline: "node server.js"},
		},
	}
}

func TestPort(t *testing.T) {
	var buf bytes.Buffer
	Port(&buf, Styles{}, sampleReport())

	want := `Port 8080 Connections (2 found)

Connection #1:
  Protocol: TCP
  State: LISTEN
  Local: 127.0.0.1:8080
  Process: node (PID: 812)
  User: alice
  Command: node server.js

Connection #2:
  Protocol: TCP6
  State: ESTABLISHED
  Local: ::1:8080
  Remote: ::1:51000
  Process: Unknown
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPortInlineWarning(t *testing.T) {
	r := sampleReport()
	r.Conns = r.Conns[:1]
	r.Owners[812] = proc.Process{PID: 812, Name: "node", User: "root", UID: 0, State: proc.StateSleeping}

	var buf bytes.Buffer
	Port(&buf, Styles{}, r)
	if !strings.Contains(buf.String(), "Warning: Process running with elevated privileges (root)") {
		t.Errorf("missing warning:\n%s", buf.String())
	}
}

func TestPortWildcardLocal(t *testing.T) {
	r := PortReport{Port: 53, Conns: []netstat.Connection{{Proto: "UDP", State: "UNKNOWN", LocalPort: 53}}}

	var buf bytes.Buffer
	Port(&buf, Styles{}, r)
	if !strings.Contains(buf.String(), "Local: *:53") {
		t.Errorf("empty local address should render as *:\n%s", buf.String())
	}
}

func TestPortShort(t *testing.T) {
	var buf bytes.Buffer
	PortShort(&buf, sampleReport())

	want := "Port 8080: node[812] by alice (LISTEN)\nPort 8080: Unknown process (ESTABLISHED)\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A connection whose owner exited between resolution and detail lookup
// has a PID but no process details; the short form skips it.
func TestPortShortSkipsVanishedOwner(t *testing.T) {
	r := PortReport{
		Port:  80,
		Conns: []netstat.Connection{{Proto: "TCP", State: "LISTEN", LocalPort: 80, PID: 999}},
	}

	var buf bytes.Buffer
	PortShort(&buf, r)
	if buf.Len() != 0 {
		t.Errorf("got %q, want no output", buf.String())
	}
}

func TestPortJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PortJSON(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	var doc portDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Port != 8080 || doc.ConnectionCount != 2 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Connections[0].Process == nil || doc.Connections[0].Process.Name != "node" {
		t.Errorf("conn[0] process = %+v", doc.Connections[0].Process)
	}
	if doc.Connections[1].Process != nil {
		t.Error("unresolved owner should omit the process object")
	}
	if doc.Connections[1].RemotePort != 51000 {
		t.Errorf("conn[1] remote port = %d", doc.Connections[1].RemotePort)
	}
}

func TestPortWarningsRoot(t *testing.T) {
	r := PortReport{
		Port:  8080,
		Conns: []netstat.Connection{{Proto: "TCP", State: "LISTEN", LocalPort: 8080, PID: 5}},
		Owners: map[int]proc.Process{
			5: {PID: 5, Name: "nginx", User: "root", UID: 0, State: proc.StateRunning},
		},
	}

	var buf bytes.Buffer
	PortWarnings(&buf, Styles{}, r)

	want := `Port 8080 - Security Warnings
Warning: Process 'nginx' (PID 5) running as root on non-system port
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPortWarningsZombieAndMultiple(t *testing.T) {
	r := PortReport{
		Port: 9000,
		Conns: []netstat.Connection{
			{Proto: "TCP", State: "LISTEN", LocalPort: 9000, PID: 5},
			{Proto: "TCP6", State: "LISTEN", LocalPort: 9000, PID: 6},
		},
		Owners: map[int]proc.Process{
			5: {PID: 5, Name: "worker", User: "alice", UID: 1000, State: proc.StateZombie},
			6: {PID: 6, Name: "worker", User: "alice", UID: 1000, State: proc.StateRunning},
		},
	}

	var buf bytes.Buffer
	PortWarnings(&buf, Styles{}, r)
	out := buf.String()

	if !strings.Contains(out, "Zombie process 'worker' (PID 5) holding port") {
		t.Errorf("missing zombie warning:\n%s", out)
	}
	if !strings.Contains(out, "Multiple processes (2) listening on port 9000") {
		t.Errorf("missing multiple-listeners warning:\n%s", out)
	}
}

func TestPortWarningsNone(t *testing.T) {
	r := PortReport{
		Port:  8080,
		Conns: []netstat.Connection{{Proto: "TCP", State: "LISTEN", LocalPort: 8080, PID: 5}},
		Owners: map[int]proc.Process{
			5: {PID: 5, Name: "node", User: "alice", UID: 1000, State: proc.StateSleeping},
		},
	}

	var buf bytes.Buffer
	PortWarnings(&buf, Styles{}, r)

	if !strings.Contains(buf.String(), "No warnings found for port 8080") {
		t.Errorf("missing all-clear note:\n%s", buf.String())
	}
}

// System ports get no root warning; root on 443 is expected.
func TestPortWarningsSystemPortRoot(t *testing.T) {
	r := PortReport{
		Port:  443,
		Conns: []netstat.Connection{{Proto: "TCP", State: "LISTEN", LocalPort: 443, PID: 5}},
		Owners: map[int]proc.Process{
			5: {PID: 5, Name: "nginx", User: "root", UID: 0, State: proc.StateRunning},
		},
	}

	var buf bytes.Buffer
	PortWarnings(&buf, Styles{}, r)
	if !strings.Contains(buf.String(), "No warnings found") {
		t.Errorf("root on a system port should not warn:\n%s", buf.String())
	}
}

func TestStylesDisabledRendersPlain(t *testing.T) {
	st := NewStyles(false)
	if got := st.Title.Render("Process Information"); got != "Process Information" {
		t.Errorf("disabled style altered text: %q", got)
	}
}
