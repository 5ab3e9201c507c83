//go:build unix

package proc

import "golang.org/x/sys/unix"

// Alive reports whether a process with the given pid exists right now.
// A process we lack permission to signal still exists.
func Alive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}
