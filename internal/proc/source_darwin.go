//go:build darwin

package proc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sys/unix"
)

// sysctlSource reads processes through the kern.proc sysctl namespace.
type sysctlSource struct {
	log *slog.Logger
}

func (s *sysctlSource) Get(pid int) (Process, error) {
	if pid <= 0 {
		return Process{}, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	kp, err := unix.SysctlKinfoProc("kern.proc.pid", pid)
	if err != nil {
		return Process{}, fmt.Errorf("pid %d: %w", pid, classifyDarwin(err))
	}
	return s.fromKinfo(kp), nil
}

func (s *sysctlSource) List(ctx context.Context) ([]Process, error) {
	kps, err := unix.SysctlKinfoProcSlice("kern.proc.all")
	if err != nil {
		return nil, fmt.Errorf("kern.proc.all: %w", err)
	}

	out := make([]Process, 0, len(kps))
	for i := range kps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if kps[i].Proc.P_pid <= 0 {
			continue
		}
		out = append(out, s.fromKinfo(&kps[i]))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

func (s *sysctlSource) Environ(pid int) ([]string, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	raw, err := unix.SysctlRaw("kern.procargs2", pid)
	if err != nil {
		// The kernel answers EINVAL for another user's process.
		if errors.Is(err, unix.EINVAL) {
			return nil, fmt.Errorf("pid %d procargs: %w", pid, ErrPermissionDenied)
		}
		return nil, fmt.Errorf("pid %d procargs: %w", pid, classifyDarwin(err))
	}
	return parseProcArgs(raw).env, nil
}

func (s *sysctlSource) fromKinfo(kp *unix.KinfoProc) Process {
	pid := int(kp.Proc.P_pid)
	p := Process{
		PID:   pid,
		PPID:  int(kp.Eproc.Ppid),
		Name:  unix.ByteSliceToString(kp.Proc.P_comm[:]),
		UID:   int(kp.Eproc.Ucred.Uid),
		State: darwinState(int(kp.Proc.P_stat)),
	}
	if sec := kp.Proc.P_starttime.Sec; sec > 0 {
		p.Started = time.Unix(sec, int64(kp.Proc.P_starttime.Usec)*1000)
	}
	p.User = userName(p.UID)

	// Memory counters come from a second call; absent without libproc.
	if vsz, rss, ok := taskMemory(pid); ok {
		p.VSZ, p.RSS = vsz, rss
	}
	// The argument buffer is unreadable for other users' processes;
	// kernel tasks have none. Either way the command line stays empty.
	if raw, err := unix.SysctlRaw("kern.procargs2", pid); err == nil {
		p.Cmdline = parseProcArgs(raw).cmdline()
	}
	return p
}

// classifyDarwin maps sysctl errors onto the package sentinels. A pid
// query for a process that does not exist succeeds with an empty
// result, which the sysctl helpers surface as EIO.
func classifyDarwin(err error) error {
	switch {
	case errors.Is(err, unix.EIO), errors.Is(err, unix.ESRCH), errors.Is(err, unix.ENOENT):
		return ErrNotFound
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return ErrPermissionDenied
	default:
		return err
	}
}
