package netstat

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// procfsResolver scans the kernel's socket tables under root (normally
// /proc) and correlates matches with owning processes through their
// descriptor tables. root is configurable so tests can run against
// synthetic trees.
type procfsResolver struct {
	root    string
	log     *slog.Logger
	skipLog rate.Sometimes
}

func newProcfsResolver(log *slog.Logger) *procfsResolver {
	return &procfsResolver{
		root:    "/proc",
		log:     log,
		skipLog: rate.Sometimes{First: 3, Interval: 5 * time.Second},
	}
}

func (r *procfsResolver) Resolve(ctx context.Context, port int) ([]Connection, error) {
	var out []Connection
	for _, table := range []struct{ file, proto string }{
		{"net/tcp", "TCP"},
		{"net/tcp6", "TCP6"},
	} {
		conns, err := r.scanTable(ctx, table.file, table.proto, port)
		if err != nil {
			// Single-stack kernels may lack one of the tables.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, conns...)
	}
	return out, nil
}

func (r *procfsResolver) scanTable(ctx context.Context, file, proto string, port int) ([]Connection, error) {
	path := filepath.Join(r.root, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out []Connection
	sc := bufio.NewScanner(f)
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, ok := parseNetRow(sc.Text())
		if !ok {
			r.skipLog.Do(func() {
				r.log.Debug("skipping malformed socket row", "table", path)
			})
			continue
		}
		if row.localPort != port {
			continue
		}
		out = append(out, Connection{
			Proto:      proto,
			State:      stateLabel(row.state),
			LocalAddr:  row.localAddr,
			LocalPort:  row.localPort,
			RemoteAddr: row.remoteAddr,
			RemotePort: row.remotePort,
			PID:        r.ownerOf(ctx, row.inode),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

// netRow is one decoded socket table row.
type netRow struct {
	localAddr  string
	localPort  int
	remoteAddr string
	remotePort int
	state      int
	uid        int
	inode      uint64
}

// parseNetRow decodes one /proc/net/tcp* row. Field layout:
//
//	sl local_address rem_address st tx:rx tr:tm retrnsmt uid timeout inode ...
func parseNetRow(line string) (netRow, bool) {
	f := strings.Fields(line)
	if len(f) < 10 {
		return netRow{}, false
	}

	var row netRow
	var ok bool
	if row.localAddr, row.localPort, ok = splitHexAddr(f[1]); !ok {
		return netRow{}, false
	}
	if row.remoteAddr, row.remotePort, ok = splitHexAddr(f[2]); !ok {
		return netRow{}, false
	}

	state, err := strconv.ParseInt(f[3], 16, 32)
	if err != nil {
		return netRow{}, false
	}
	row.state = int(state)

	uid, err := strconv.Atoi(f[7])
	if err != nil {
		return netRow{}, false
	}
	row.uid = uid

	inode, err := strconv.ParseUint(f[9], 10, 64)
	if err != nil {
		return netRow{}, false
	}
	row.inode = inode

	return row, true
}

// splitHexAddr decodes the kernel's "ADDR:PORT" hex column.
func splitHexAddr(s string) (addr string, port int, ok bool) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return "", 0, false
	}
	p, err := strconv.ParseInt(s[i+1:], 16, 32)
	if err != nil {
		return "", 0, false
	}
	ip, ok := decodeHexAddr(s[:i])
	if !ok {
		return "", 0, false
	}
	return ip, int(p), true
}

// decodeHexAddr turns the kernel's packed hex address text into
// dotted-quad or IPv6 form. Each 32-bit word is stored little-endian.
func decodeHexAddr(s string) (string, bool) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", false
	}
	switch len(raw) {
	case 4, 16:
	default:
		return "", false
	}
	ip := make(net.IP, len(raw))
	for w := 0; w < len(raw); w += 4 {
		ip[w+0] = raw[w+3]
		ip[w+1] = raw[w+2]
		ip[w+2] = raw[w+1]
		ip[w+3] = raw[w+0]
	}
	return ip.String(), true
}

// ownerOf walks every process's descriptor table looking for the socket
// inode; the first owner found wins and ends the walk. Descriptor
// tables we cannot read (other users' processes, without privileges)
// are skipped. 0 means no owner was resolved.
func (r *procfsResolver) ownerOf(ctx context.Context, inode uint64) int {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return 0
	}

	target := "socket:[" + strconv.FormatUint(inode, 10) + "]"
	for _, ent := range entries {
		if ctx.Err() != nil {
			return 0
		}
		pid, err := strconv.Atoi(ent.Name())
		if err != nil || pid <= 0 {
			continue
		}
		fdDir := filepath.Join(r.root, ent.Name(), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			r.skipLog.Do(func() {
				r.log.Debug("skipping descriptor table", "pid", pid, "err", err)
			})
			continue
		}
		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			if link == target {
				return pid
			}
		}
	}
	return 0
}
