// Package globe defines the rendering-toolkit boundary the engine drives,
// and a headless software implementation of it.
package globe

import "time"

// Radius is the globe radius in km (spherical approximation).
const Radius = 6371.0

// DefaultAltitude is the camera distance above the surface, in units of the
// globe radius.
const DefaultAltitude = 2.5

// View is the globe's orientation relative to the viewer: the surface point
// under the center of the viewport plus the camera altitude in radii.
type View struct {
	Lat      float64
	Lng      float64
	Altitude float64
}

// Marker is a labeled surface location. At most one is active at a time;
// the engine owns its logical lifetime.
type Marker struct {
	Lat   float64
	Lng   float64
	Label string
}

// Globe is the rendering toolkit seen from the engine. Implementations must
// tolerate calls while still loading: Ready reports false and the engine
// skips camera and rotation work for that tick.
type Globe interface {
	// Ready reports whether assets are loaded and the camera exists.
	Ready() bool

	// Camera returns the toolkit camera, or nil while not ready.
	Camera() *Camera

	// PointOfView re-centers the view. A zero transition is an instantaneous
	// per-frame nudge; a non-zero transition is a one-shot animated fly-to.
	PointOfView(v View, transition time.Duration)

	// PointsData replaces the active marker set.
	PointsData(markers []Marker)

	// Controls returns the interaction-controls object.
	Controls() *Controls

	// SetSize resizes the output buffer without touching projection; the
	// viewport adapter owns projection extents.
	SetSize(width, height int)
}
