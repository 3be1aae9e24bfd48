package waitfor

import "testing"

// probe counts how many times its underlying check ran.
type probe struct {
	value bool
	calls int
}

func (p *probe) Met() bool {
	p.calls++
	return p.value
}

func (p *probe) String() string { return "probe" }

func TestAndShortCircuit(t *testing.T) {
	left := &probe{value: false}
	right := &probe{value: true}

	if And(left, right).Met() {
		t.Fatal("false and true reported as met")
	}
	if left.calls != 1 {
		t.Fatalf("left probe ran %d times, want 1", left.calls)
	}
	if right.calls != 0 {
		t.Fatalf("right probe ran %d times after the left already decided", right.calls)
	}
}

func TestOrShortCircuit(t *testing.T) {
	left := &probe{value: true}
	right := &probe{value: false}

	if !Or(left, right).Met() {
		t.Fatal("true or false reported as not met")
	}
	if right.calls != 0 {
		t.Fatalf("right probe ran %d times after the left already decided", right.calls)
	}
}

func TestDoubleNegation(t *testing.T) {
	for _, value := range []bool{true, false} {
		c := &probe{value: value}
		if Not(Not(c)).Met() != value {
			t.Fatalf("double negation changed the outcome for %v", value)
		}
	}

	// Not of a Not unwraps to the original condition.
	c := &probe{value: true}
	if Not(Not(c)) != Condition(c) {
		t.Fatal("double negation did not unwrap structurally")
	}
}

func TestDeMorgan(t *testing.T) {
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			left := Func(func() bool { return a }, false)
			right := Func(func() bool { return b }, false)

			if got, want := Not(And(left, right)).Met(), Or(Not(left), Not(right)).Met(); got != want {
				t.Fatalf("not(%v and %v) = %v, but (not a or not b) = %v", a, b, got, want)
			}
			if got, want := Not(Or(left, right)).Met(), And(Not(left), Not(right)).Met(); got != want {
				t.Fatalf("not(%v or %v) = %v, but (not a and not b) = %v", a, b, got, want)
			}
		}
	}
}

func TestCombinatorFlattening(t *testing.T) {
	a, b, c := &probe{value: true}, &probe{value: true}, &probe{value: true}

	and, ok := And(And(a, b), c).(*andCondition)
	if !ok {
		t.Fatal("nested And did not produce an and node")
	}
	if len(and.conds) != 3 {
		t.Fatalf("nested And flattened to %d operands, want 3", len(and.conds))
	}

	or, ok := Or(Or(a, b), c).(*orCondition)
	if !ok {
		t.Fatal("nested Or did not produce an or node")
	}
	if len(or.conds) != 3 {
		t.Fatalf("nested Or flattened to %d operands, want 3", len(or.conds))
	}
}

func TestCombinatorIdentities(t *testing.T) {
	if !And().Met() {
		t.Fatal("And of nothing should be met")
	}
	if Or().Met() {
		t.Fatal("Or of nothing should not be met")
	}

	c := &probe{value: true}
	if And(c) != Condition(c) {
		t.Fatal("And of one condition should be that condition")
	}
	if Or(c) != Condition(c) {
		t.Fatal("Or of one condition should be that condition")
	}
}

func TestFunc(t *testing.T) {
	value := false
	c := Func(func() bool { return value }, false)
	n := Func(func() bool { return value }, true)

	if c.Met() {
		t.Fatal("predicate false reported as met")
	}
	if !n.Met() {
		t.Fatal("negated predicate false not reported as met")
	}

	value = true

	if !c.Met() {
		t.Fatal("predicate true not reported as met")
	}
	if n.Met() {
		t.Fatal("negated predicate true reported as met")
	}
}

func TestTreeDescriptions(t *testing.T) {
	a := Func(func() bool { return true }, false)
	b := Func(func() bool { return false }, true)

	if got := And(a, b).String(); got != "(predicate true and predicate false)" {
		t.Fatalf("unexpected And description: %q", got)
	}
	if got := Not(Or(a, b)).String(); got != "not ((predicate true or predicate false))" {
		t.Fatalf("unexpected Not description: %q", got)
	}
}
