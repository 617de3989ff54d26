// Package engine synchronizes a rotating globe with real-world solar
// illumination: camera tilt tracks the sun's declination every frame, idle
// auto-rotation advances the view at a fixed angular rate, and user
// interaction pauses rotation until a quiet period passes.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/solwheel/astroglobe/globe"
	"github.com/solwheel/astroglobe/solar"
)

// Clock is the engine's wall-clock reader.
type Clock func() time.Time

// Engine is the handle returned by initialization: every later effect that
// needs to mutate the marker or the view threads through it, never through
// process-wide state. All engine state is owned by one event loop; external
// calls post closures into it.
type Engine struct {
	opts Options
	log  *zap.Logger

	globe    globe.Globe
	gate     *InteractionGate
	sched    *RotationScheduler
	viewport *ViewportAdapter
	clock    Clock

	events  chan func()
	done    chan struct{}
	stopped chan struct{}
	started atomic.Bool
	closing sync.Once
}

// New builds an engine around a globe. A nil logger disables logging.
func New(g globe.Globe, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()

	gate := NewInteractionGate(opts.DebounceDelay)
	return &Engine{
		opts:     opts,
		log:      log,
		globe:    g,
		gate:     gate,
		sched:    NewRotationScheduler(g, gate, opts.RotationRateDegPerMs),
		viewport: NewViewportAdapter(g, opts.MarginFactor),
		clock:    time.Now,
		events:   make(chan func(), 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// SetClock replaces the time source. Only valid before Start; used by tests
// and offline frame drivers.
func (e *Engine) SetClock(c Clock) {
	if c != nil {
		e.clock = c
	}
}

// Start wires interaction events into the gate and launches the frame loop.
// It returns immediately; Close (or ctx cancellation) stops the loop.
func (e *Engine) Start(ctx context.Context) {
	if !e.started.CompareAndSwap(false, true) {
		return
	}

	if e.opts.PointerInteraction {
		e.globe.Controls().Subscribe(
			func() { e.post(func() { e.gate.Start() }) },
			func() { e.post(func() { e.gate.End(e.clock()) }) },
		)
	}

	e.log.Info("engine started",
		zap.Duration("frame_interval", e.opts.FrameInterval),
		zap.Duration("debounce", e.opts.DebounceDelay),
		zap.Float64("rotation_deg_per_ms", e.opts.RotationRateDegPerMs),
	)
	go e.run(ctx)
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.stopped)

	ticker := time.NewTicker(e.opts.FrameInterval)
	defer ticker.Stop()

	frames := 0
	statsAt := e.clock()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case <-ticker.C:
			now := e.clock()
			e.sched.Tick(now)

			frames++
			if now.Sub(statsAt) >= time.Second {
				e.log.Debug("frame loop",
					zap.Int("fps", frames),
					zap.Float64("lng", e.sched.View().Lng),
					zap.Bool("interacting", e.gate.Active()),
				)
				frames = 0
				statsAt = now
			}
		case f := <-e.events:
			f()
		}
	}
}

// post hands a closure to the event loop; it reports false (and drops the
// closure) once the engine is torn down, so late callbacks no-op.
func (e *Engine) post(f func()) bool {
	select {
	case e.events <- f:
		return true
	case <-e.done:
		return false
	}
}

// Close stops the frame loop, drops any pending release deadline and
// detaches the interaction subscription. Idempotent; safe from any
// goroutine.
func (e *Engine) Close() {
	e.closing.Do(func() {
		close(e.done)
		e.globe.Controls().Unsubscribe()
		e.log.Info("engine closed")
	})
	if e.started.Load() {
		<-e.stopped
	}
}

// Recenter consumes an externally resolved location: it replaces the active
// marker and issues a one-shot animated fly-to, distinct from the
// zero-duration per-frame rotation nudge.
func (e *Engine) Recenter(lat, lng float64, label string) {
	lng = solar.NormalizeLng(lng)
	e.post(func() {
		v := e.sched.View()
		v.Lat, v.Lng = lat, lng
		e.sched.SetView(v)

		e.globe.PointsData([]globe.Marker{{Lat: lat, Lng: lng, Label: label}})
		e.globe.PointOfView(v, e.opts.FlyToDuration)

		e.log.Info("recenter",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.String("label", label),
		)
	})
}

// SetView replaces the view without touching the marker, for initial
// placement.
func (e *Engine) SetView(v globe.View) {
	e.post(func() {
		e.sched.SetView(v)
		e.globe.PointOfView(e.sched.View(), 0)
	})
}

// Resize reports a change in the rendering surface's pixel dimensions.
func (e *Engine) Resize(width, height int) {
	e.post(func() { e.viewport.Resize(width, height) })
}

// InteractionStart and InteractionEnd mirror the controls events for hosts
// that drive input directly rather than through globe.Controls.
func (e *Engine) InteractionStart() {
	e.post(func() { e.gate.Start() })
}

func (e *Engine) InteractionEnd() {
	e.post(func() { e.gate.End(e.clock()) })
}

// Step applies pending events and runs one frame synchronously at the given
// instant. For offline rendering and tests; do not mix with Start.
func (e *Engine) Step(now time.Time) {
	for {
		select {
		case f := <-e.events:
			f()
			continue
		default:
		}
		break
	}
	e.sched.Tick(now)
}

// View returns the current view state.
func (e *Engine) View() globe.View {
	return e.sched.View()
}
