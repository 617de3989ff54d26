package engine

import (
	"time"

	"github.com/solwheel/astroglobe/globe"
	"github.com/solwheel/astroglobe/solar"
)

// RotationScheduler is the per-frame driver. Every tick it synchronizes the
// camera tilt with the current solar declination; when the interaction gate
// is idle it additionally advances the globe's longitude at a fixed angular
// rate and issues a zero-duration re-center.
type RotationScheduler struct {
	globe globe.Globe
	gate  *InteractionGate
	rate  float64 // degrees per millisecond

	view   globe.View
	last   time.Time
	primed bool
}

func NewRotationScheduler(g globe.Globe, gate *InteractionGate, rateDegPerMs float64) *RotationScheduler {
	return &RotationScheduler{
		globe: g,
		gate:  gate,
		rate:  rateDegPerMs,
		view:  globe.View{Altitude: globe.DefaultAltitude},
	}
}

// SetView replaces the scheduler's view; serialized with ticks by the
// engine's event loop, since both mutate the same state.
func (s *RotationScheduler) SetView(v globe.View) {
	v.Lng = solar.NormalizeLng(v.Lng)
	s.view = v
}

// View returns the current view state.
func (s *RotationScheduler) View() globe.View {
	return s.view
}

// ResetBaseline restarts delta timing from now.
func (s *RotationScheduler) ResetBaseline(now time.Time) {
	s.last = now
	s.primed = true
}

// Baseline returns the instant deltas are measured from.
func (s *RotationScheduler) Baseline() time.Time {
	return s.last
}

// Tick runs one frame at the given instant.
func (s *RotationScheduler) Tick(now time.Time) {
	// The debounce deadline and the tick interleave within the same tick
	// boundary: consult the gate fresh every tick, never a cached value.
	// A release resets the baseline so the elapsed gesture time is not
	// applied as a rotation jump.
	if s.gate.Poll(now) {
		s.last = now
	}
	if !s.primed {
		s.last = now
		s.primed = true
	}
	dt := now.Sub(s.last)
	s.last = now

	if !s.globe.Ready() {
		// Assets still loading; skip this tick's camera and rotation work
		// and retry on the next one.
		return
	}

	SyncCamera(s.globe.Camera(), solar.DeclinationAt(now))

	if s.gate.Active() || dt <= 0 {
		return
	}

	ms := float64(dt) / float64(time.Millisecond)
	s.view.Lng = solar.NormalizeLng(s.view.Lng + s.rate*ms)
	s.globe.PointOfView(s.view, 0)
}
