package proc

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Pure parsers for the procfs text formats, split from the live source so
// they can run against synthetic data.

// statFields holds the slice of /proc/<pid>/stat this package reads.
type statFields struct {
	name      string
	state     byte
	ppid      int
	starttime uint64 // clock ticks since boot
}

// parseStat extracts name, state, ppid and start time from a stat line.
// The name sits in parentheses and may itself contain spaces and
// parentheses, so it is delimited by the last closing parenthesis; the
// numeric fields follow it at fixed positions.
func parseStat(line string) (statFields, error) {
	openIdx := strings.IndexByte(line, '(')
	closeIdx := strings.LastIndexByte(line, ')')
	if openIdx < 0 || closeIdx < openIdx || closeIdx+2 >= len(line) {
		return statFields{}, fmt.Errorf("malformed stat line")
	}

	rest := strings.Fields(line[closeIdx+2:])
	const starttimeIdx = 19 // field 22 of the full line
	if len(rest) <= starttimeIdx {
		return statFields{}, fmt.Errorf("stat line has %d fields after name", len(rest))
	}

	ppid, err := strconv.Atoi(rest[1])
	if err != nil {
		return statFields{}, fmt.Errorf("stat ppid: %w", err)
	}
	starttime, err := strconv.ParseUint(rest[starttimeIdx], 10, 64)
	if err != nil {
		return statFields{}, fmt.Errorf("stat starttime: %w", err)
	}

	return statFields{
		name:      line[openIdx+1 : closeIdx],
		state:     rest[0][0],
		ppid:      ppid,
		starttime: starttime,
	}, nil
}

// statusFields holds the slice of /proc/<pid>/status this package reads.
type statusFields struct {
	uid   int
	vszKB uint64
	rssKB uint64
}

// parseStatus scans a status file for the real uid and the memory
// counters. Missing rows leave zero values.
func parseStatus(data []byte) statusFields {
	var out statusFields
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "Uid:"):
			f := strings.Fields(line[len("Uid:"):])
			if len(f) > 0 {
				out.uid, _ = strconv.Atoi(f[0])
			}
		case strings.HasPrefix(line, "VmSize:"):
			out.vszKB = parseKBRow(line)
		case strings.HasPrefix(line, "VmRSS:"):
			out.rssKB = parseKBRow(line)
		}
	}
	return out
}

// parseKBRow reads the numeric value of a "Key:  N kB" status row.
func parseKBRow(line string) uint64 {
	f := strings.Fields(line)
	if len(f) < 2 {
		return 0
	}
	v, _ := strconv.ParseUint(f[1], 10, 64)
	return v
}

// cleanCmdline rewrites the NUL separators of /proc/<pid>/cmdline into
// spaces and trims the trailing terminator.
func cleanCmdline(data []byte) string {
	s := strings.ReplaceAll(string(data), "\x00", " ")
	return strings.TrimSpace(s)
}

// splitEnviron splits a NUL-separated environment block into KEY=VALUE
// entries, preserving order. Empty entries and entries without '=' are
// dropped.
func splitEnviron(data []byte) []string {
	var env []string
	for _, e := range bytes.Split(data, []byte{0}) {
		if len(e) == 0 || !bytes.ContainsRune(e, '=') {
			continue
		}
		env = append(env, string(e))
	}
	return env
}

// parseBootTime finds the btime row of /proc/stat.
func parseBootTime(data []byte) (bootSec int64, ok bool) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "btime ") {
			continue
		}
		sec, err := strconv.ParseInt(strings.TrimSpace(line[len("btime "):]), 10, 64)
		if err != nil {
			return 0, false
		}
		return sec, true
	}
	return 0, false
}
