package waitfor

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// TCPCondition is met while a TCP connection to Addr can be established
// within Timeout. Any dial failure (refused, timeout, DNS) counts as
// unreachable.
type TCPCondition struct {
	Addr    string
	Timeout time.Duration
	not     bool
}

// TCP returns a condition met while addr (host:port) accepts TCP
// connections. The address is validated here: a malformed address is a
// configuration mistake, not an environmental state to wait out.
func TCP(addr string, not bool) (*TCPCondition, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("tcp condition: %w", err)
	}
	if host == "" {
		return nil, fmt.Errorf("tcp condition: missing host in %q", addr)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return nil, fmt.Errorf("tcp condition: invalid port %q in %q", port, addr)
	}

	return &TCPCondition{Addr: addr, Timeout: DefaultProbeTimeout, not: not}, nil
}

func (c *TCPCondition) Met() bool {
	dialer := net.Dialer{Timeout: c.Timeout}

	conn, err := dialer.Dial("tcp", c.Addr)
	if err == nil {
		conn.Close()
	}

	return (err == nil) != c.not
}

func (c *TCPCondition) String() string {
	if c.not {
		return fmt.Sprintf("tcp %s unreachable", c.Addr)
	}
	return fmt.Sprintf("tcp %s reachable", c.Addr)
}
