package proc

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// procArgs is a decoded kern.procargs2 buffer: the executable path, the
// argument vector, and the environment of one process.
type procArgs struct {
	exec string
	args []string
	env  []string
}

// parseProcArgs walks the raw kern.procargs2 buffer. Layout: a
// native-endian int32 argument count, the NUL-terminated executable
// path, NUL padding, argc NUL-terminated arguments, then environment
// strings until an empty string or the end of the buffer. Every cursor
// step is bounds-checked; a truncated buffer yields whatever was
// recovered before the cursor ran out.
func parseProcArgs(buf []byte) procArgs {
	var pa procArgs
	if len(buf) < 4 {
		return pa
	}
	argc := int(binary.NativeEndian.Uint32(buf[:4]))
	cur := 4

	pa.exec, cur = nextString(buf, cur)

	// Alignment padding between the path and the argument vector.
	for cur < len(buf) && buf[cur] == 0 {
		cur++
	}

	for i := 0; i < argc && cur < len(buf); i++ {
		var s string
		s, cur = nextString(buf, cur)
		pa.args = append(pa.args, s)
	}

	for cur < len(buf) {
		var s string
		s, cur = nextString(buf, cur)
		if s == "" {
			break
		}
		if strings.ContainsRune(s, '=') {
			pa.env = append(pa.env, s)
		}
	}
	return pa
}

// cmdline renders the argument vector as a single line, falling back to
// the executable path when no arguments were recovered.
func (pa procArgs) cmdline() string {
	if len(pa.args) > 0 {
		return strings.Join(pa.args, " ")
	}
	return pa.exec
}

// nextString reads the NUL-terminated string at cur and advances past
// its terminator.
func nextString(buf []byte, cur int) (string, int) {
	if cur >= len(buf) {
		return "", len(buf)
	}
	end := bytes.IndexByte(buf[cur:], 0)
	if end < 0 {
		return string(buf[cur:]), len(buf)
	}
	return string(buf[cur : cur+end]), cur + end + 1
}
