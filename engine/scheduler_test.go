package engine

import (
	"math"
	"testing"
	"time"

	"github.com/solwheel/astroglobe/globe"
	"github.com/solwheel/astroglobe/solar"
)

func TestTickAdvancesLongitude(t *testing.T) {
	t0 := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newStubGlobe(true)
	s := NewRotationScheduler(g, NewInteractionGate(2*time.Second), DefaultRotationRate)

	s.Tick(t0) // primes the baseline, no rotation yet
	if len(g.views) != 0 {
		t.Fatalf("priming tick issued %d view updates", len(g.views))
	}

	s.Tick(t0.Add(time.Second))
	want := DefaultRotationRate * 1000.0 // ~0.004167 degrees
	if got := s.View().Lng; math.Abs(got-want) > 1e-12 {
		t.Errorf("lng after 1s = %.9f, want %.9f", got, want)
	}
	if len(g.views) != 1 || g.transitions[0] != 0 {
		t.Errorf("views=%v transitions=%v, want one zero-transition nudge", g.views, g.transitions)
	}

	// rotation rate is per elapsed time, not per tick
	s.Tick(t0.Add(3 * time.Second))
	want = DefaultRotationRate * 3000.0
	if got := s.View().Lng; math.Abs(got-want) > 1e-12 {
		t.Errorf("lng after 3s = %.9f, want %.9f", got, want)
	}
}

func TestTickSyncsCameraTilt(t *testing.T) {
	now := time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	g := newStubGlobe(true)
	s := NewRotationScheduler(g, NewInteractionGate(2*time.Second), DefaultRotationRate)

	s.Tick(now)

	wantTilt := solar.DeclinationAt(now) * math.Pi / 180.0
	if got := g.cam.TiltRad; math.Abs(got-wantTilt) > 1e-9 {
		t.Errorf("tilt = %f rad, want %f", got, wantTilt)
	}
}

func TestTickPausesDuringInteraction(t *testing.T) {
	t0 := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newStubGlobe(true)
	gate := NewInteractionGate(2 * time.Second)
	s := NewRotationScheduler(g, gate, DefaultRotationRate)

	s.Tick(t0)
	gate.Start()
	s.Tick(t0.Add(time.Second))
	s.Tick(t0.Add(2 * time.Second))

	if s.View().Lng != 0 {
		t.Errorf("lng advanced to %.9f during interaction", s.View().Lng)
	}
	if len(g.views) != 0 {
		t.Errorf("%d view updates issued during interaction", len(g.views))
	}
}

func TestReleaseResetsBaseline(t *testing.T) {
	t0 := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newStubGlobe(true)
	gate := NewInteractionGate(2 * time.Second)
	s := NewRotationScheduler(g, gate, DefaultRotationRate)

	s.Tick(t0)
	gate.Start()
	gate.End(t0)

	// the release tick must not apply the whole gesture span as rotation
	release := t0.Add(2100 * time.Millisecond)
	s.Tick(release)
	if s.View().Lng != 0 {
		t.Errorf("release tick rotated by %.9f", s.View().Lng)
	}
	if !s.Baseline().Equal(release) {
		t.Errorf("baseline = %v, want %v", s.Baseline(), release)
	}

	// the next tick measures from the release
	s.Tick(release.Add(time.Second))
	want := DefaultRotationRate * 1000.0
	if got := s.View().Lng; math.Abs(got-want) > 1e-12 {
		t.Errorf("lng after resume = %.9f, want %.9f", got, want)
	}
}

func TestTickSkipsUnreadyGlobe(t *testing.T) {
	t0 := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newStubGlobe(false)
	s := NewRotationScheduler(g, NewInteractionGate(2*time.Second), DefaultRotationRate)

	s.Tick(t0)
	s.Tick(t0.Add(time.Second))
	if len(g.views) != 0 {
		t.Errorf("view updates issued while globe not ready")
	}

	// ticks resume once loading finishes
	g.ready = true
	g.cam = globe.NewCamera()
	s.Tick(t0.Add(2 * time.Second))
	if len(g.views) != 1 {
		t.Errorf("ready globe got %d view updates, want 1", len(g.views))
	}
}

func TestSetViewNormalizesLongitude(t *testing.T) {
	g := newStubGlobe(true)
	s := NewRotationScheduler(g, NewInteractionGate(2*time.Second), DefaultRotationRate)

	s.SetView(globe.View{Lat: 10, Lng: 190})
	if got := s.View().Lng; got != -170 {
		t.Errorf("lng = %f, want -170", got)
	}
	s.SetView(globe.View{Lng: -180})
	if got := s.View().Lng; got != 180 {
		t.Errorf("lng = %f, want 180", got)
	}
}
