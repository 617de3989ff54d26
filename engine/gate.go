package engine

import "time"

// InteractionGate tracks whether the user is actively manipulating the view.
// A gesture start opens the gate immediately; a gesture end arms a release
// deadline that, if no further start intervenes, closes it again.
//
// The gate is clock-parameterized rather than timer-driven: the frame loop
// polls it every tick, so the release edge and the tick can never race.
type InteractionGate struct {
	debounce time.Duration
	active   bool
	deadline time.Time // pending release; zero when none
}

func NewInteractionGate(debounce time.Duration) *InteractionGate {
	return &InteractionGate{debounce: debounce}
}

// Start marks the beginning of a gesture and cancels any pending release.
// Re-entrant starts (multi-touch) collapse into one.
func (g *InteractionGate) Start() {
	g.active = true
	g.deadline = time.Time{}
}

// End arms the release deadline. The gate stays active until the deadline
// passes with no intervening Start.
func (g *InteractionGate) End(now time.Time) {
	if g.active {
		g.deadline = now.Add(g.debounce)
	}
}

// Poll advances the gate to now. It reports true exactly once, on the tick
// where the release deadline has passed, so the caller can reset its frame
// delta baseline.
func (g *InteractionGate) Poll(now time.Time) (released bool) {
	if g.active && !g.deadline.IsZero() && !now.Before(g.deadline) {
		g.active = false
		g.deadline = time.Time{}
		return true
	}
	return false
}

// Active reports whether a gesture is in flight as of the last Poll.
func (g *InteractionGate) Active() bool {
	return g.active
}
