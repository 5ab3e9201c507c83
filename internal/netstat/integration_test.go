//go:build integration

package netstat_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/benaskins/specto/internal/netstat"
)

// TestResolveOwnListener opens a real loopback listener and verifies the
// platform resolver finds it and attributes it to this process.
func TestResolveOwnListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	r := netstat.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	conns, err := r.Resolve(context.Background(), port)
	if errors.Is(err, netstat.ErrUnsupported) {
		t.Skipf("no connection backend on this host: %v", err)
	}
	if err != nil {
		t.Fatalf("Resolve(%d): %v", port, err)
	}
	if len(conns) == 0 {
		t.Fatalf("Resolve(%d): no connections, want at least the listener", port)
	}

	var found *netstat.Connection
	for i := range conns {
		if conns[i].PID == os.Getpid() {
			found = &conns[i]
			break
		}
	}
	if found == nil {
		for _, c := range conns {
			t.Logf("connection: proto=%s state=%s local=%s:%d pid=%d", c.Proto, c.State, c.LocalAddr, c.LocalPort, c.PID)
		}
		t.Fatalf("no connection attributed to this process (pid %d)", os.Getpid())
	}
	if !found.HasOwner() {
		t.Error("HasOwner() = false for own listener")
	}
	if found.LocalPort != port {
		t.Errorf("LocalPort = %d, want %d", found.LocalPort, port)
	}
	if !strings.HasPrefix(found.Proto, "TCP") {
		t.Errorf("Proto = %q, want TCP family", found.Proto)
	}
	if found.State != "LISTEN" {
		t.Errorf("State = %q, want LISTEN", found.State)
	}
}

// TestResolveIdlePort closes a just-bound listener and verifies the freed
// port resolves to an empty result rather than an error.
func TestResolveIdlePort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	r := netstat.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	conns, err := r.Resolve(context.Background(), port)
	if errors.Is(err, netstat.ErrUnsupported) {
		t.Skipf("no connection backend on this host: %v", err)
	}
	if err != nil {
		t.Fatalf("Resolve(%d): %v", port, err)
	}
	if len(conns) != 0 {
		t.Errorf("Resolve(%d) after close: %d connections, want 0", port, len(conns))
	}
}
