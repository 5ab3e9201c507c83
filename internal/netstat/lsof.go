package netstat

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// lsofResolver shells out to lsof, the delegated query path on hosts
// without a readable socket table. -n and -P keep addresses and ports
// numeric so the field output parses deterministically.
type lsofResolver struct {
	log *slog.Logger
}

func (r *lsofResolver) Resolve(ctx context.Context, port int) ([]Connection, error) {
	cmd := exec.CommandContext(ctx, "lsof", "-nP", "-i", ":"+strconv.Itoa(port), "-F", "pnPT")
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrNotFound):
			return nil, fmt.Errorf("lsof not installed: %w", ErrUnsupported)
		case errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(out) == 0:
			// lsof answers 1 when nothing matches the filter.
			return nil, nil
		default:
			return nil, fmt.Errorf("lsof: %w", err)
		}
	}
	conns := parseLsof(out, port)
	r.log.Debug("lsof query", "port", port, "connections", len(conns))
	return conns, nil
}

// parseLsof decodes lsof field output (-F pnPT): every 'p' field opens
// a connection record (flushing the one before it), 'P' and 'TST'
// fields annotate the open record, each 'n' field re-attaches the
// address, unknown fields are ignored, and the final record is flushed
// at end of input.
func parseLsof(out []byte, port int) []Connection {
	var conns []Connection
	var cur *Connection
	flush := func() {
		if cur != nil {
			conns = append(conns, *cur)
			cur = nil
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if len(line) < 2 {
			continue
		}
		tag, val := line[0], line[1:]
		switch tag {
		case 'p':
			flush()
			pid, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			cur = &Connection{Proto: "TCP", State: "UNKNOWN", LocalPort: port, PID: pid}
		case 'P':
			if cur != nil {
				cur.Proto = val
			}
		case 'n':
			if cur != nil {
				attachAddr(cur, val, port)
			}
		case 'T':
			if cur == nil {
				continue
			}
			if st, ok := strings.CutPrefix(val, "ST="); ok {
				cur.State = st
			}
		}
	}
	flush()
	return conns
}

// attachAddr splits an lsof name field ("addr:port", possibly
// "local->remote") into the record's address columns. The local port
// always reflects the queried port.
func attachAddr(c *Connection, name string, port int) {
	local, remote, _ := strings.Cut(name, "->")
	c.LocalAddr, _ = splitHostPort(local)
	c.LocalPort = port
	if remote != "" {
		c.RemoteAddr, c.RemotePort = splitHostPort(remote)
	}
}

// splitHostPort strips the trailing :port from an lsof address,
// tolerating "*" wildcards and bracketed IPv6 forms.
func splitHostPort(s string) (string, int) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return s, 0
	}
	port, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return s, 0
	}
	host := strings.TrimSuffix(strings.TrimPrefix(s[:i], "["), "]")
	return host, port
}
