package waitfor

import "strings"

type andCondition struct {
	conds []Condition
}

// And combines conditions so all must hold. Operands are evaluated left to
// right and the first false one stops the poll, so probes to the right of a
// failing operand never run. Nested Ands are flattened; And of a single
// condition is that condition, and And of nothing is always met.
func And(conds ...Condition) Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	flat := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if a, ok := c.(*andCondition); ok {
			flat = append(flat, a.conds...)
		} else {
			flat = append(flat, c)
		}
	}
	return &andCondition{conds: flat}
}

func (a *andCondition) Met() bool {
	for _, c := range a.conds {
		if !c.Met() {
			return false
		}
	}
	return true
}

func (a *andCondition) String() string {
	return describe(a.conds, " and ")
}

type orCondition struct {
	conds []Condition
}

// Or combines conditions so any one suffices. Evaluation short-circuits on
// the first true operand. Nested Ors are flattened; Or of a single
// condition is that condition, and Or of nothing is never met.
func Or(conds ...Condition) Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	flat := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if o, ok := c.(*orCondition); ok {
			flat = append(flat, o.conds...)
		} else {
			flat = append(flat, c)
		}
	}
	return &orCondition{conds: flat}
}

func (o *orCondition) Met() bool {
	for _, c := range o.conds {
		if c.Met() {
			return true
		}
	}
	return false
}

func (o *orCondition) String() string {
	return describe(o.conds, " or ")
}

type notCondition struct {
	c Condition
}

// Not inverts a condition, primitive or tree. Not of a Not returns the
// original condition.
func Not(c Condition) Condition {
	if n, ok := c.(*notCondition); ok {
		return n.c
	}
	return &notCondition{c: c}
}

func (n *notCondition) Met() bool {
	return !n.c.Met()
}

func (n *notCondition) String() string {
	return "not (" + n.c.String() + ")"
}

func describe(conds []Condition, sep string) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
