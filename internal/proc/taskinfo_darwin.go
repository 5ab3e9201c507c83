//go:build darwin && cgo

package proc

/*
#include <libproc.h>
*/
import "C"

import "unsafe"

// taskMemory reads the virtual and resident sizes of a process in KiB
// through libproc. Fails (ok=false) for processes we may not inspect.
func taskMemory(pid int) (vsz, rss uint64, ok bool) {
	var ti C.struct_proc_taskinfo
	n := C.proc_pidinfo(C.int(pid), C.PROC_PIDTASKINFO, 0,
		unsafe.Pointer(&ti), C.int(unsafe.Sizeof(ti)))
	if int(n) < int(unsafe.Sizeof(ti)) {
		return 0, 0, false
	}
	return uint64(ti.pti_virtual_size) / 1024, uint64(ti.pti_resident_size) / 1024, true
}
