// Package shade implements the day/night surface shading used on the globe.
//
// The light direction is fixed in view space: only the camera's orientation
// changes per frame, never a per-pixel world-space sun vector. This decouples
// shading from the globe's rotation state entirely.
package shade

import (
	"math"

	"github.com/solwheel/astroglobe/colors"
	"github.com/solwheel/astroglobe/vectors"
)

// Default terminator softness: a narrow smoothstep band gives a crisp but
// anti-aliased day/night line.
const (
	DefaultLoEdge = 0.0
	DefaultHiEdge = 0.15
)

// Model blends day and night color samples by how directly a surface point
// faces the light.
type Model struct {
	// Light is the light direction in view space (x right, y up, z toward
	// the viewer).
	Light vectors.Vec3

	// LoEdge and HiEdge are the smoothstep edges controlling terminator
	// softness. At intensity <= LoEdge the result is the night sample; at
	// intensity >= HiEdge it is the day sample.
	LoEdge, HiEdge float64
}

// New returns a Model with the given view-space light direction and the
// default terminator edges.
func New(light vectors.Vec3) Model {
	return Model{
		Light:  light,
		LoEdge: DefaultLoEdge,
		HiEdge: DefaultHiEdge,
	}
}

// Intensity returns max(0, normal · light) with both vectors normalized.
func (m Model) Intensity(normal vectors.Vec3) float64 {
	d := normal.Normalize().Dot(m.Light.Normalize())
	if d < 0 {
		return 0
	}
	return d
}

// Blend returns the surface color for a point with the given view-space
// normal: night below the terminator, day above, smoothly interpolated
// across the smoothstep band.
func (m Model) Blend(normal vectors.Vec3, day, night colors.Color4) colors.Color4 {
	b := Smoothstep(m.LoEdge, m.HiEdge, m.Intensity(normal))
	return night.Mix(day, b)
}

// Smoothstep performs a Hermite interpolation between 0 and 1 across
// [edge0, edge1]. Returns 0 if x < edge0, 1 if x > edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	// Avoid division by zero
	if edge0 == edge1 {
		if x < edge0 {
			return 0.0
		}
		return 1.0
	}

	t := (x - edge0) / (edge1 - edge0)
	if t < 0.0 {
		t = 0.0
	} else if t > 1.0 {
		t = 1.0
	}
	return t * t * (3.0 - 2.0*t)
}

// Clip clamps x into the inclusive range [min, max].
func Clip(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// BlendClouds overlays a cloud RGB texture onto the base surface color using
// inferred alpha. light is the sunlight factor (0..1); boost increases cloud
// visibility.
func BlendClouds(c, cloud colors.Color4, light, boost float64) colors.Color4 {
	brightness := (cloud.R + cloud.G + cloud.B) / 3.0
	cloudAlpha := brightness * light * boost

	return colors.Color4{
		R: c.R + (1.0-c.R)*cloud.R*cloudAlpha,
		G: c.G + (1.0-c.G)*cloud.G*cloudAlpha,
		B: c.B + (1.0-c.B)*cloud.B*cloudAlpha,
		A: c.A, // preserve base alpha
	}
}

// SpecularHighlight returns the additive sun-glint contribution for ocean
// pixels via a Blinn-Phong style specular model. view and light are unit
// vectors from the surface point toward the viewer and the light; dayColor
// decides how ocean-like the pixel is.
func SpecularHighlight(normal, view, light vectors.Vec3, dayColor colors.Color4) colors.Color4 {
	halfVec := view.Add(light).Normalize()

	specAngle := Clip(normal.Dot(halfVec), 0.0, 1.0)
	specular := math.Pow(specAngle, 30)
	oceanFactor := Clip((dayColor.B-0.5*(dayColor.R+dayColor.G))*10.0, 0.0, 1.0)
	fresnel := math.Pow(1.0-Clip(normal.Dot(view), 0.0, 1.0), 2.0)

	strength := specular * oceanFactor * (0.2 + 0.8*fresnel)

	sunColor := colors.Color4{R: 1.0, G: 0.97, B: 0.9, A: 1.0}
	return sunColor.Scale(strength)
}
