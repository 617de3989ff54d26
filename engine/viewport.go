package engine

import "github.com/solwheel/astroglobe/globe"

// ViewportAdapter keeps the projection consistent with the rendering
// surface's pixel dimensions. It runs on resize events only, not per frame.
type ViewportAdapter struct {
	globe  globe.Globe
	margin float64
}

func NewViewportAdapter(g globe.Globe, marginFactor float64) *ViewportAdapter {
	return &ViewportAdapter{globe: g, margin: marginFactor}
}

// Resize updates the output buffer size and recomputes the orthographic
// half-extents from min(width,height)/margin. Degenerate dimensions are
// ignored; a not-yet-ready camera picks its extents up on load.
func (v *ViewportAdapter) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.globe.SetSize(width, height)
	if cam := v.globe.Camera(); cam != nil {
		cam.SetViewport(width, height, v.margin)
	}
}
