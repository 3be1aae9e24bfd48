package waitfor

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// PingCondition is met while Host answers an ICMP echo within Timeout.
// Resolution failures, unanswered echoes and missing socket privileges all
// count as not answering.
type PingCondition struct {
	Host    string
	Timeout time.Duration
	not     bool
}

// Ping returns a condition met while host answers ICMP echo requests. Raw
// ICMP sockets are tried first, then the unprivileged datagram fallback.
func Ping(host string, not bool) *PingCondition {
	return &PingCondition{Host: host, Timeout: DefaultProbeTimeout, not: not}
}

func (c *PingCondition) Met() bool {
	return c.ping() != c.not
}

func (c *PingCondition) String() string {
	if c.not {
		return fmt.Sprintf("ping %s not answering", c.Host)
	}
	return fmt.Sprintf("ping %s answering", c.Host)
}

func (c *PingCondition) ping() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	dst, isIPv6 := resolvePingTarget(ctx, c.Host)
	if dst == nil {
		return false
	}

	conn, err := listenICMP(isIPv6)
	if err != nil {
		return false
	}
	defer conn.Close()

	if err := sendEchoRequest(conn, dst, isIPv6); err != nil {
		return false
	}

	return readEchoReply(conn, c.Timeout, isIPv6)
}

// resolvePingTarget tries IPv4 first, then IPv6.
func resolvePingTarget(ctx context.Context, target string) (net.IP, bool) {
	if addrs, err := net.DefaultResolver.LookupIP(ctx, "ip4", target); err == nil && len(addrs) > 0 {
		return addrs[0], false
	}
	if addrs, err := net.DefaultResolver.LookupIP(ctx, "ip6", target); err == nil && len(addrs) > 0 {
		return addrs[0], true
	}
	return nil, false
}

func listenICMP(isIPv6 bool) (*icmp.PacketConn, error) {
	if isIPv6 {
		conn, err := icmp.ListenPacket("ip6:ipv6-icmp", "::")
		if err != nil {
			conn, err = icmp.ListenPacket("udp6", "::")
		}
		return conn, err
	}
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		conn, err = icmp.ListenPacket("udp4", "0.0.0.0")
	}
	return conn, err
}

func sendEchoRequest(conn *icmp.PacketConn, dst net.IP, isIPv6 bool) error {
	var msgType icmp.Type
	if isIPv6 {
		msgType = ipv6.ICMPTypeEchoRequest
	} else {
		msgType = ipv4.ICMPTypeEcho
	}

	msg := icmp.Message{
		Type: msgType,
		Code: 0,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  1,
			Data: []byte("waitfor-ping"),
		},
	}
	wb, err := msg.Marshal(nil)
	if err != nil {
		return err
	}

	var dstAddr net.Addr
	switch conn.LocalAddr().Network() {
	case "udp4", "udp6":
		dstAddr = &net.UDPAddr{IP: dst}
	default:
		dstAddr = &net.IPAddr{IP: dst}
	}
	_, err = conn.WriteTo(wb, dstAddr)
	return err
}

func readEchoReply(conn *icmp.PacketConn, timeout time.Duration, isIPv6 bool) bool {
	conn.SetReadDeadline(time.Now().Add(timeout))

	rb := make([]byte, 1500)
	n, _, err := conn.ReadFrom(rb)
	if err != nil {
		return false
	}

	var proto int
	switch conn.LocalAddr().Network() {
	case "udp4":
		proto = 1
	case "udp6":
		proto = 58
	default:
		if isIPv6 {
			proto = 58
		} else {
			proto = 1
		}
	}

	rm, err := icmp.ParseMessage(proto, rb[:n])
	if err != nil {
		return false
	}

	return rm.Type == ipv4.ICMPTypeEchoReply || rm.Type == ipv6.ICMPTypeEchoReply
}
