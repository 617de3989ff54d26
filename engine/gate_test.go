package engine

import (
	"testing"
	"time"
)

func TestGateReleasedExactlyOnce(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewInteractionGate(2 * time.Second)

	g.Start()
	if !g.Active() {
		t.Fatal("gate not active after Start")
	}
	g.End(t0)
	if !g.Active() {
		t.Fatal("gate released immediately on End")
	}

	if g.Poll(t0.Add(time.Second)) {
		t.Error("released before the debounce elapsed")
	}
	if !g.Active() {
		t.Error("inactive before the debounce elapsed")
	}

	if !g.Poll(t0.Add(2 * time.Second)) {
		t.Error("no release edge at the deadline")
	}
	if g.Active() {
		t.Error("still active after release")
	}

	// the edge fires exactly once
	if g.Poll(t0.Add(3 * time.Second)) {
		t.Error("release edge fired twice")
	}
}

func TestGateStartCancelsPendingRelease(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewInteractionGate(2 * time.Second)

	g.Start()
	g.End(t0)
	g.Start() // new gesture before the deadline

	if g.Poll(t0.Add(10 * time.Second)) {
		t.Error("stale deadline released a live gesture")
	}
	if !g.Active() {
		t.Error("gate inactive during live gesture")
	}
}

func TestGateReentrantStartsCollapse(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewInteractionGate(2 * time.Second)

	g.Start()
	g.Start()
	g.End(t0)

	if !g.Poll(t0.Add(2 * time.Second)) {
		t.Error("no release after multi-touch gesture ended")
	}
}

func TestGateEndWithoutStart(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewInteractionGate(2 * time.Second)

	g.End(t0)
	if g.Active() {
		t.Error("End activated an idle gate")
	}
	if g.Poll(t0.Add(5 * time.Second)) {
		t.Error("release edge without a gesture")
	}
}
