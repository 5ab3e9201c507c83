package proc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/tklauser/go-sysconf"
)

// procfsSource reads processes from a procfs mount. root is the mount
// point, normally /proc; tests point it at synthetic trees.
type procfsSource struct {
	root string
	log  *slog.Logger

	// tickHz is the clock tick rate used for start-time math; resolved
	// through sysconf when left zero.
	tickHz int64

	bootOnce sync.Once
	boot     time.Time
}

func (s *procfsSource) Get(pid int) (Process, error) {
	if pid <= 0 {
		return Process{}, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	dir := filepath.Join(s.root, strconv.Itoa(pid))

	statData, err := os.ReadFile(filepath.Join(dir, "stat"))
	if err != nil {
		return Process{}, fmt.Errorf("pid %d: %w", pid, classify(err))
	}
	st, err := parseStat(string(statData))
	if err != nil {
		return Process{}, fmt.Errorf("pid %d stat: %w", pid, err)
	}

	p := Process{
		PID:     pid,
		PPID:    st.ppid,
		Name:    st.name,
		State:   ParseState(st.state),
		Started: s.startedAt(st.starttime),
	}

	// status and cmdline are best-effort; a process may deny them while
	// still exposing stat.
	if data, err := os.ReadFile(filepath.Join(dir, "status")); err == nil {
		sf := parseStatus(data)
		p.UID = sf.uid
		p.VSZ = sf.vszKB
		p.RSS = sf.rssKB
	}
	if data, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil {
		p.Cmdline = cleanCmdline(data)
	}
	p.User = userName(p.UID)

	return p, nil
}

func (s *procfsSource) List(ctx context.Context) ([]Process, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.root, classify(err))
	}

	var out []Process
	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pid, err := strconv.Atoi(ent.Name())
		if err != nil || pid <= 0 {
			continue
		}
		p, err := s.Get(pid)
		if err != nil {
			// Vanished or unreadable mid-walk.
			s.log.Debug("skipping process", "pid", pid, "err", err)
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

func (s *procfsSource) Environ(pid int) ([]string, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(s.root, strconv.Itoa(pid), "environ"))
	if err != nil {
		return nil, fmt.Errorf("pid %d environ: %w", pid, classify(err))
	}
	return splitEnviron(data), nil
}

// startedAt converts clock ticks since boot into wall-clock time. Both
// halves of the math are host facts read once; when either is missing
// the start time stays zero.
func (s *procfsSource) startedAt(ticks uint64) time.Time {
	s.bootOnce.Do(func() {
		if data, err := os.ReadFile(filepath.Join(s.root, "stat")); err == nil {
			if sec, ok := parseBootTime(data); ok {
				s.boot = time.Unix(sec, 0)
			}
		}
		if s.tickHz == 0 {
			if hz, err := sysconf.Sysconf(sysconf.SC_CLK_TCK); err == nil && hz > 0 {
				s.tickHz = hz
			} else {
				s.tickHz = -1
			}
		}
	})
	if s.boot.IsZero() || s.tickHz <= 0 {
		return time.Time{}
	}
	return s.boot.Add(time.Duration(ticks/uint64(s.tickHz)) * time.Second)
}

// classify maps filesystem and syscall errors onto the package
// sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ESRCH):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return err
	}
}
