package waitfor

import (
	"testing"
	"time"
)

func TestElapsedBoundary(t *testing.T) {
	met := Elapsed(40*time.Millisecond, false)
	notYet := Elapsed(40*time.Millisecond, true)

	if met.Met() {
		t.Fatal("elapsed met before the deadline")
	}
	if !notYet.Met() {
		t.Fatal("negated elapsed not met before the deadline")
	}

	time.Sleep(60 * time.Millisecond)

	if !met.Met() {
		t.Fatal("elapsed not met after the deadline")
	}
	if notYet.Met() {
		t.Fatal("negated elapsed still met after the deadline")
	}
}

func TestElapsedAt(t *testing.T) {
	past := ElapsedAt(time.Now().Add(-time.Second), false)
	if !past.Met() {
		t.Fatal("past deadline not met immediately")
	}

	future := ElapsedAt(time.Now().Add(time.Hour), false)
	if future.Met() {
		t.Fatal("future deadline met too early")
	}
}

func TestElapsedZeroDuration(t *testing.T) {
	if !Elapsed(0, false).Met() {
		t.Fatal("zero duration not met on the first check")
	}
}
