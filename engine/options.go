package engine

import "time"

// DefaultRotationRate is one full revolution per day, in degrees per
// millisecond.
const DefaultRotationRate = 360.0 / 86_400_000.0

// Options are the externally settable engine constants.
type Options struct {
	// RotationRateDegPerMs is the idle auto-rotation rate.
	RotationRateDegPerMs float64

	// DebounceDelay is the quiet period after the last gesture before
	// auto-rotation resumes.
	DebounceDelay time.Duration

	// FrameInterval paces the frame loop when the engine drives its own
	// clock (Start); Step-driven hosts ignore it.
	FrameInterval time.Duration

	// FlyToDuration is the transition of the one-shot animated recenter,
	// as opposed to the zero-duration per-frame rotation nudge.
	FlyToDuration time.Duration

	// MarginFactor sizes the projection half-extents from
	// min(width,height)/MarginFactor so the globe stays fully visible.
	MarginFactor float64

	// PointerInteraction wires the toolkit's gesture events into the
	// interaction gate. Disabled variants rotate regardless of input.
	PointerInteraction bool
}

func DefaultOptions() Options {
	return Options{
		RotationRateDegPerMs: DefaultRotationRate,
		DebounceDelay:        2000 * time.Millisecond,
		FrameInterval:        time.Second / 60,
		FlyToDuration:        time.Second,
		MarginFactor:         2.2,
		PointerInteraction:   true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RotationRateDegPerMs == 0 {
		o.RotationRateDegPerMs = d.RotationRateDegPerMs
	}
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = d.DebounceDelay
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = d.FrameInterval
	}
	if o.FlyToDuration <= 0 {
		o.FlyToDuration = d.FlyToDuration
	}
	if o.MarginFactor <= 0 {
		o.MarginFactor = d.MarginFactor
	}
	return o
}
