// Package waitfor blocks until some condition about the external world
// holds: a duration has passed, a file exists (or stops existing), a file
// has been modified, a host accepts TCP connections, an HTTP endpoint
// returns an expected status, or an arbitrary predicate returns true.
//
// Primitive conditions can be negated and combined with And, Or and Not
// into a tree that is re-evaluated on every poll. Probe failures never
// surface as errors; a transient failure simply reads as "not yet".
package waitfor

import (
	"context"
	"time"
)

// DefaultProbeTimeout bounds a single network probe (TCP dial, HTTP GET,
// WebSocket handshake, ICMP round-trip). It is short and independent of the
// poll interval; each network condition exposes a Timeout field to change it.
const DefaultProbeTimeout = 3 * time.Second

// Condition is one check against the environment, or a combination of
// checks. Met evaluates the condition once and reports whether it currently
// holds. It never returns an error: every probe failure counts as "not met"
// before any negation is applied.
//
// Conditions are immutable once constructed and safe to evaluate any number
// of times. Distinct conditions share no state, so independent trees may be
// polled from different goroutines.
type Condition interface {
	Met() bool
	String() string
}

// Wait polls c every interval until it is met or ctx is done. The condition
// is checked before the first sleep, so a condition that already holds
// returns without sleeping at all.
//
// Wait itself never gives up; bound it by composing a deadline into the
// condition or by cancelling ctx.
func Wait(ctx context.Context, c Condition, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if c.Met() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
