package proc

import (
	"encoding/binary"
	"reflect"
	"strings"
	"testing"
)

// buildProcArgs assembles a kern.procargs2-shaped buffer.
func buildProcArgs(argc uint32, exec string, args, env []string) []byte {
	buf := binary.NativeEndian.AppendUint32(nil, argc)
	buf = append(buf, exec...)
	buf = append(buf, 0, 0, 0) // terminator plus alignment padding
	for _, a := range args {
		buf = append(buf, a...)
		buf = append(buf, 0)
	}
	for _, e := range env {
		buf = append(buf, e...)
		buf = append(buf, 0)
	}
	buf = append(buf, 0)
	return buf
}

func TestParseProcArgs(t *testing.T) {
	buf := buildProcArgs(3, "/usr/local/bin/server",
		[]string{"server", "--listen", ":8080"},
		[]string{"PATH=/usr/bin", "HOME=/Users/ben"})

	pa := parseProcArgs(buf)
	if pa.exec != "/usr/local/bin/server" {
		t.Errorf("exec = %q", pa.exec)
	}
	if want := []string{"server", "--listen", ":8080"}; !reflect.DeepEqual(pa.args, want) {
		t.Errorf("args = %v, want %v", pa.args, want)
	}
	if want := []string{"PATH=/usr/bin", "HOME=/Users/ben"}; !reflect.DeepEqual(pa.env, want) {
		t.Errorf("env = %v, want %v", pa.env, want)
	}
	if got := pa.cmdline(); got != "server --listen :8080" {
		t.Errorf("cmdline = %q", got)
	}
}

func TestParseProcArgsFiltersEnv(t *testing.T) {
	buf := buildProcArgs(1, "/bin/cat", []string{"cat"},
		[]string{"GOOD=1", "malformed-entry", "ALSO=fine"})
	pa := parseProcArgs(buf)
	if want := []string{"GOOD=1", "ALSO=fine"}; !reflect.DeepEqual(pa.env, want) {
		t.Errorf("env = %v, want %v", pa.env, want)
	}
}

func TestParseProcArgsTruncated(t *testing.T) {
	full := buildProcArgs(2, "/bin/ls", []string{"ls", "-la"}, []string{"A=1"})
	for cut := 0; cut < len(full); cut++ {
		// No cut point may panic; partial output is acceptable.
		parseProcArgs(full[:cut])
	}

	pa := parseProcArgs(full[:4])
	if pa.exec != "" || pa.args != nil || pa.env != nil {
		t.Errorf("argc-only buffer should parse empty, got %+v", pa)
	}
	if got := parseProcArgs(nil); got.exec != "" {
		t.Errorf("nil buffer should parse empty, got %+v", got)
	}
}

func TestParseProcArgsNoArgs(t *testing.T) {
	// Kernel tasks report argc 0 and nothing but the path.
	buf := binary.NativeEndian.AppendUint32(nil, 0)
	buf = append(buf, "/sbin/launchd"...)
	buf = append(buf, 0)
	pa := parseProcArgs(buf)
	if pa.cmdline() != "/sbin/launchd" {
		t.Errorf("cmdline = %q, want the bare path", pa.cmdline())
	}
}

func FuzzParseProcArgs(f *testing.F) {
	f.Add(buildProcArgs(2, "/bin/ls", []string{"ls", "-la"}, []string{"A=1", "B=2"}))
	f.Add(buildProcArgs(0, "", nil, nil))
	f.Add([]byte{})
	f.Add([]byte{255, 255, 255, 255})
	f.Fuzz(func(t *testing.T, data []byte) {
		// The cursor walk must stay in bounds for arbitrary buffers.
		pa := parseProcArgs(data)
		for _, e := range pa.env {
			if !strings.ContainsRune(e, '=') {
				t.Errorf("env entry %q survived without '='", e)
			}
		}
	})
}
