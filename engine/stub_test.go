package engine

import (
	"time"

	"github.com/solwheel/astroglobe/globe"
)

// stubGlobe records the calls the engine makes against the toolkit boundary.
type stubGlobe struct {
	ready    bool
	cam      *globe.Camera
	controls *globe.Controls

	views       []globe.View
	transitions []time.Duration
	markers     []globe.Marker
	sizes       [][2]int
}

func newStubGlobe(ready bool) *stubGlobe {
	s := &stubGlobe{ready: ready, controls: globe.NewControls()}
	if ready {
		s.cam = globe.NewCamera()
	}
	return s
}

func (s *stubGlobe) Ready() bool { return s.ready }

func (s *stubGlobe) Camera() *globe.Camera {
	if !s.ready {
		return nil
	}
	return s.cam
}

func (s *stubGlobe) PointOfView(v globe.View, transition time.Duration) {
	s.views = append(s.views, v)
	s.transitions = append(s.transitions, transition)
}

func (s *stubGlobe) PointsData(markers []globe.Marker) {
	s.markers = append(s.markers[:0], markers...)
}

func (s *stubGlobe) Controls() *globe.Controls { return s.controls }

func (s *stubGlobe) SetSize(width, height int) {
	s.sizes = append(s.sizes, [2]int{width, height})
}
