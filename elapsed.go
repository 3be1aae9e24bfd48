package waitfor

import (
	"fmt"
	"time"
)

// ElapsedCondition is met once a point in time has been reached. The
// deadline is captured at construction against the monotonic clock, so
// wall-clock adjustments do not affect it.
type ElapsedCondition struct {
	deadline time.Time
	not      bool
}

// Elapsed returns a condition met once d has passed, counting from now.
// Negated, it is met only while time remains.
func Elapsed(d time.Duration, not bool) *ElapsedCondition {
	return ElapsedAt(time.Now().Add(d), not)
}

// ElapsedAt returns a condition met at or after t.
func ElapsedAt(t time.Time, not bool) *ElapsedCondition {
	return &ElapsedCondition{deadline: t, not: not}
}

func (c *ElapsedCondition) Met() bool {
	raw := !time.Now().Before(c.deadline)
	return raw != c.not
}

func (c *ElapsedCondition) String() string {
	if c.not {
		return fmt.Sprintf("before %s", c.deadline.Format(time.RFC3339))
	}
	return fmt.Sprintf("after %s", c.deadline.Format(time.RFC3339))
}
