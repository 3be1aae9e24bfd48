package waitfor

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

// WebSocketCondition is met while a WebSocket handshake to URL completes
// within Timeout.
type WebSocketCondition struct {
	URL     string
	Timeout time.Duration
	not     bool
}

// WebSocket returns a condition met while a ws:// or wss:// endpoint
// accepts a handshake. The URL is validated here.
func WebSocket(rawurl string, not bool) (*WebSocketCondition, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("websocket condition: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("websocket condition: unsupported scheme %q in %q", u.Scheme, rawurl)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("websocket condition: missing host in %q", rawurl)
	}

	return &WebSocketCondition{URL: u.String(), Timeout: DefaultProbeTimeout, not: not}, nil
}

func (c *WebSocketCondition) Met() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, c.URL, nil)
	if err == nil {
		conn.Close(websocket.StatusNormalClosure, "")
	}

	return (err == nil) != c.not
}

func (c *WebSocketCondition) String() string {
	if c.not {
		return fmt.Sprintf("websocket %s refusing handshake", c.URL)
	}
	return fmt.Sprintf("websocket %s accepting handshake", c.URL)
}
