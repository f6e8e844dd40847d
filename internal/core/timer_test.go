package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestFixedStepPacing(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now

	if !fs.ShouldStep() {
		t.Fatal("first call should step")
	}
	if fs.ShouldStep() {
		t.Fatal("stepped again without time passing")
	}
	clock.t = clock.t.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped after half an interval")
	}
	clock.t = clock.t.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("did not step after a full interval")
	}
}

func TestFixedStepBoundsBacklog(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	fs := NewFixedStep(100)
	fs.now = clock.now
	fs.ShouldStep()

	clock.t = clock.t.Add(time.Second)
	ticks := 0
	for fs.ShouldStep() {
		ticks++
	}
	if ticks != 5 {
		t.Fatalf("ticks after stall = %d, expected 5", ticks)
	}
}

func TestFixedStepDefaultTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if got := fs.Interval(); got != time.Second/60 {
		t.Fatalf("interval = %v", got)
	}
}
