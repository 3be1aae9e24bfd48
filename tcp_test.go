package waitfor

import (
	"net"
	"testing"
)

func TestTCPValidation(t *testing.T) {
	valid := []string{
		"localhost:80",
		"127.0.0.1:80",
		"127.0.0.1:8000",
		"127.0.0.1:65534",
		"127.0.0.1:65535",
		"[::1]:443",
	}
	for _, addr := range valid {
		if _, err := TCP(addr, false); err != nil {
			t.Fatalf("TCP(%q) = %v, want nil", addr, err)
		}
	}

	invalid := []string{
		"localhost",
		"127.0.0.1",
		"127.0.0.1:65536",
		"127.0.0.1:-1",
		"127.0.0.1:http",
		":80",
		"",
	}
	for _, addr := range invalid {
		if _, err := TCP(addr, false); err == nil {
			t.Fatalf("TCP(%q) accepted a malformed address", addr)
		}
	}
}

func TestTCPReachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	addr := ln.Addr().String()

	up, err := TCP(addr, false)
	if err != nil {
		t.Fatal(err)
	}
	down, err := TCP(addr, true)
	if err != nil {
		t.Fatal(err)
	}

	if !up.Met() {
		t.Fatal("listening address not reported reachable")
	}
	if down.Met() {
		t.Fatal("negated condition met while the listener is up")
	}

	ln.Close()

	if up.Met() {
		t.Fatal("closed listener still reported reachable")
	}
	if !down.Met() {
		t.Fatal("negated condition not met after the listener closed")
	}
}
