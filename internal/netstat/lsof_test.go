package netstat

import "testing"

func TestParseLsof(t *testing.T) {
	out := []byte("p812\n" +
		"PTCP\n" +
		"n127.0.0.1:8080\n" +
		"TST=LISTEN\n" +
		"p997\n" +
		"PTCP\n" +
		"n192.168.1.5:8080->203.0.113.9:52114\n" +
		"TST=ESTABLISHED\n")

	conns := parseLsof(out, 8080)
	if len(conns) != 2 {
		t.Fatalf("len = %d, want 2", len(conns))
	}

	c := conns[0]
	if c.PID != 812 || c.Proto != "TCP" || c.State != "LISTEN" {
		t.Errorf("conn[0] = %+v", c)
	}
	if c.LocalAddr != "127.0.0.1" || c.LocalPort != 8080 {
		t.Errorf("conn[0] local = %s:%d", c.LocalAddr, c.LocalPort)
	}
	if c.RemoteAddr != "" || c.RemotePort != 0 {
		t.Errorf("conn[0] remote = %s:%d, want empty", c.RemoteAddr, c.RemotePort)
	}

	c = conns[1]
	if c.PID != 997 || c.State != "ESTABLISHED" {
		t.Errorf("conn[1] = %+v", c)
	}
	if c.RemoteAddr != "203.0.113.9" || c.RemotePort != 52114 {
		t.Errorf("conn[1] remote = %s:%d", c.RemoteAddr, c.RemotePort)
	}
}

// The last record has no terminator line; it must still be flushed.
func TestParseLsofFlushesFinalRecord(t *testing.T) {
	conns := parseLsof([]byte("p77\nPUDP\nn*:5353"), 5353)
	if len(conns) != 1 {
		t.Fatalf("len = %d, want 1", len(conns))
	}
	c := conns[0]
	if c.PID != 77 || c.Proto != "UDP" {
		t.Errorf("conn = %+v", c)
	}
	if c.LocalAddr != "*" || c.LocalPort != 5353 {
		t.Errorf("local = %s:%d", c.LocalAddr, c.LocalPort)
	}
	if c.State != "UNKNOWN" {
		t.Errorf("state = %q, want UNKNOWN when lsof reports none", c.State)
	}
}

func TestParseLsofBracketedV6(t *testing.T) {
	conns := parseLsof([]byte("p33\nPTCP\nn[::1]:9000->[2001:db8::4]:41000\nTST=ESTABLISHED\n"), 9000)
	if len(conns) != 1 {
		t.Fatalf("len = %d, want 1", len(conns))
	}
	c := conns[0]
	if c.LocalAddr != "::1" {
		t.Errorf("local = %q, want ::1", c.LocalAddr)
	}
	if c.RemoteAddr != "2001:db8::4" || c.RemotePort != 41000 {
		t.Errorf("remote = %s:%d", c.RemoteAddr, c.RemotePort)
	}
}

func TestParseLsofIgnoresStrayFields(t *testing.T) {
	out := []byte("f3\n" + // file descriptor field, not requested but harmless
		"nbefore-any-record:1\n" + // address with no open record
		"TST=LISTEN\n" + // state with no open record
		"p50\n" +
		"PTCP\n" +
		"n*:6000\n" +
		"TQR=0\n" + // TCP queue info, not a state
		"TST=LISTEN\n")

	conns := parseLsof(out, 6000)
	if len(conns) != 1 {
		t.Fatalf("len = %d, want 1", len(conns))
	}
	if conns[0].State != "LISTEN" {
		t.Errorf("state = %q, want LISTEN", conns[0].State)
	}
}

func TestParseLsofEmpty(t *testing.T) {
	if conns := parseLsof(nil, 80); len(conns) != 0 {
		t.Fatalf("len = %d, want 0", len(conns))
	}
}

func TestSplitHostPort(t *testing.T) {
	cases := []struct {
		in   string
		host string
		port int
	}{
		{"127.0.0.1:8080", "127.0.0.1", 8080},
		{"*:443", "*", 443},
		{"[::1]:8080", "::1", 8080},
		{"localhost", "localhost", 0},
		{"*:*", "*:*", 0},
	}
	for _, c := range cases {
		host, port := splitHostPort(c.in)
		if host != c.host || port != c.port {
			t.Errorf("splitHostPort(%q) = %q:%d, want %q:%d", c.in, host, port, c.host, c.port)
		}
	}
}
