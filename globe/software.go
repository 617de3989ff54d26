package globe

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/solwheel/astroglobe/colors"
	"github.com/solwheel/astroglobe/shade"
	"github.com/solwheel/astroglobe/texture"
	"github.com/solwheel/astroglobe/vectors"
)

// Assets are the equirectangular surface maps. Clouds is optional.
type Assets struct {
	Day    string
	Night  string
	Clouds string
}

// Theme holds the color grading of the software renderer.
type Theme struct {
	DayRim     colors.Color4
	Warm       colors.Color4
	CloudBoost float64
	Saturation float64
}

func DefaultTheme() Theme {
	return Theme{
		DayRim:     colors.New(0.25, 0.60, 1.00, 1.0),
		Warm:       colors.New(1.02, 1.0, 0.98, 1.0),
		CloudBoost: 2.0,
		Saturation: 1.5,
	}
}

// SoftwareConfig configures a SoftwareGlobe.
type SoftwareConfig struct {
	Assets Assets
	Theme  Theme

	// Light is the fixed view-space light direction; zero means toward the
	// viewer. LoEdge/HiEdge are the terminator smoothstep edges.
	Light          vectors.Vec3
	LoEdge, HiEdge float64

	Width, Height int
	Margin        float64
	Supersample   int
	Workers       int
	Atmosphere    bool
}

// SoftwareGlobe is a headless Globe that raytraces frames into image
// buffers. It is not ready until Load completes; the engine tolerates that
// by skipping tick work.
type SoftwareGlobe struct {
	cfg      SoftwareConfig
	shader   shade.Model
	cam      *Camera
	controls *Controls

	view    View
	markers []Marker

	width, height int

	texDay    texture.Texture
	texNight  texture.Texture
	texClouds texture.Texture
	hasClouds bool

	ready atomic.Bool
}

// NewSoftware returns an unloaded globe. Call Load before rendering; until
// then Ready reports false.
func NewSoftware(cfg SoftwareConfig) *SoftwareGlobe {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.Supersample <= 0 {
		cfg.Supersample = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Margin <= 0 {
		cfg.Margin = 2.2
	}
	if cfg.HiEdge <= cfg.LoEdge {
		cfg.LoEdge = shade.DefaultLoEdge
		cfg.HiEdge = shade.DefaultHiEdge
	}
	if cfg.Light == (vectors.Vec3{}) {
		cfg.Light = vectors.Vec3{X: 0, Y: 0, Z: 1} // toward the viewer
	}
	if cfg.Theme == (Theme{}) {
		cfg.Theme = DefaultTheme()
	}

	return &SoftwareGlobe{
		cfg:      cfg,
		controls: NewControls(),
		width:    cfg.Width,
		height:   cfg.Height,
		view:     View{Altitude: DefaultAltitude},
	}
}

// Load runs the ordered initialization sequence: fetch all surface maps
// concurrently (a join point: partial completion is not ready), then build
// the shading model, then the camera, then flip the ready gate.
func (g *SoftwareGlobe) Load(ctx context.Context) error {
	paths := []string{g.cfg.Assets.Day, g.cfg.Assets.Night}
	g.hasClouds = g.cfg.Assets.Clouds != ""
	if g.hasClouds {
		paths = append(paths, g.cfg.Assets.Clouds)
	}

	textures, err := texture.LoadAll(ctx, paths...)
	if err != nil {
		return fmt.Errorf("load globe assets: %w", err)
	}
	g.texDay, g.texNight = textures[0], textures[1]
	if g.hasClouds {
		g.texClouds = textures[2]
	}

	g.shader = shade.Model{
		Light:  g.cfg.Light,
		LoEdge: g.cfg.LoEdge,
		HiEdge: g.cfg.HiEdge,
	}

	cam := NewCamera()
	cam.SetPointOfView(g.view)
	cam.SetViewport(g.width, g.height, g.cfg.Margin)
	g.cam = cam

	g.ready.Store(true)
	return nil
}

// LoadFromTextures is Load with already decoded imagery, for hosts that
// source maps elsewhere.
func (g *SoftwareGlobe) LoadFromTextures(day, night texture.Texture, clouds *texture.Texture) {
	g.texDay, g.texNight = day, night
	if clouds != nil {
		g.texClouds = *clouds
		g.hasClouds = true
	}

	g.shader = shade.Model{
		Light:  g.cfg.Light,
		LoEdge: g.cfg.LoEdge,
		HiEdge: g.cfg.HiEdge,
	}

	cam := NewCamera()
	cam.SetPointOfView(g.view)
	cam.SetViewport(g.width, g.height, g.cfg.Margin)
	g.cam = cam

	g.ready.Store(true)
}

func (g *SoftwareGlobe) Ready() bool {
	return g.ready.Load()
}

func (g *SoftwareGlobe) Camera() *Camera {
	if !g.ready.Load() {
		return nil
	}
	return g.cam
}

func (g *SoftwareGlobe) Controls() *Controls {
	return g.controls
}

// PointOfView re-centers the globe. The headless renderer has no tween
// engine, so a non-zero transition still lands on the final pose; the
// duration only distinguishes the animated fly-to from the per-frame nudge.
func (g *SoftwareGlobe) PointOfView(v View, transition time.Duration) {
	if v.Altitude <= 0 {
		v.Altitude = g.view.Altitude
	}
	g.view = v
	if g.ready.Load() {
		g.cam.SetPointOfView(v)
	}
}

func (g *SoftwareGlobe) PointsData(markers []Marker) {
	g.markers = append(g.markers[:0], markers...)
}

func (g *SoftwareGlobe) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
}

// Size returns the current output buffer dimensions.
func (g *SoftwareGlobe) Size() (int, int) {
	return g.width, g.height
}

// ViewState returns the current view.
func (g *SoftwareGlobe) ViewState() View {
	return g.view
}
