package waitfor

import (
	"testing"
	"time"
)

func TestPingUnresolvableHost(t *testing.T) {
	c := Ping("host.invalid", false)
	c.Timeout = time.Second

	if c.Met() {
		t.Fatal("unresolvable host reported as answering")
	}

	n := Ping("host.invalid", true)
	n.Timeout = time.Second
	if !n.Met() {
		t.Fatal("unresolvable host should satisfy the negated condition")
	}
}

func TestPingLoopback(t *testing.T) {
	c := Ping("127.0.0.1", false)
	c.Timeout = time.Second

	if !c.Met() {
		t.Skip("ICMP not permitted in this environment")
	}

	n := Ping("127.0.0.1", true)
	n.Timeout = time.Second
	if n.Met() {
		t.Fatal("negated condition met while loopback answers")
	}
}
