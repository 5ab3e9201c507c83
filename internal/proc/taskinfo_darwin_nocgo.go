//go:build darwin && !cgo

package proc

// Without cgo there is no libproc; memory counters read as absent.
func taskMemory(pid int) (vsz, rss uint64, ok bool) {
	return 0, 0, false
}
