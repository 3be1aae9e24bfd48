package waitfor

// FuncCondition wraps a caller-supplied zero-argument predicate. The
// predicate must be safe to call repeatedly and must not block
// indefinitely; the poll loop has no way to interrupt it.
type FuncCondition struct {
	f   func() bool
	not bool
}

// Func returns a condition met while f returns true. State the predicate
// needs should be captured in its closure.
func Func(f func() bool, not bool) *FuncCondition {
	return &FuncCondition{f: f, not: not}
}

func (c *FuncCondition) Met() bool {
	return c.f() != c.not
}

func (c *FuncCondition) String() string {
	if c.not {
		return "predicate false"
	}
	return "predicate true"
}
