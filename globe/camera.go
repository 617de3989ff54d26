package globe

import (
	"math"

	"github.com/solwheel/astroglobe/vectors"
)

// Camera is an orthographic camera orbiting the globe's center. Position and
// the Forward/Right/Up basis live in the Y-up world frame of
// vectors.FromLatLng. UpHint is the pose up-vector set by the camera
// synchronizer; the derived basis re-orthogonalizes it against Forward.
type Camera struct {
	Position vectors.Vec3
	Forward  vectors.Vec3
	Right    vectors.Vec3
	Up       vectors.Vec3

	UpHint  vectors.Vec3
	TiltRad float64

	// Orthographic half-extents in world units, per axis.
	XExtent, YExtent float64
}

// NewCamera returns a camera at the default point of view with north up.
func NewCamera() *Camera {
	c := &Camera{UpHint: vectors.Vec3{X: 0, Y: 1, Z: 0}}
	c.SetPointOfView(View{Altitude: DefaultAltitude})
	c.SetViewport(1, 1, 2.0)
	return c
}

// SetUp replaces the camera's up-vector. Changing up alone does not reorient
// a camera already looking at a fixed target; callers must re-apply
// LookAtOrigin afterwards.
func (c *Camera) SetUp(up vectors.Vec3) {
	c.UpHint = up.Normalize()
	c.TiltRad = -math.Atan2(c.UpHint.X, c.UpHint.Y)
}

// LookAtOrigin re-derives the orthonormal basis so the camera looks at the
// globe's center with the current up hint.
func (c *Camera) LookAtOrigin() {
	fwd := c.Position.Scale(-1).Normalize()
	right := fwd.Cross(c.UpHint)
	if right.Norm() < 1e-9 {
		right = vectors.Vec3{X: 1, Y: 0, Z: 0} // degenerate: up parallel to view axis
	}
	c.Forward = fwd
	c.Right = right.Normalize()
	c.Up = c.Right.Cross(fwd).Normalize()
}

// SetPointOfView places the camera above the view's surface point and
// re-applies the look-at-origin framing.
func (c *Camera) SetPointOfView(v View) {
	alt := v.Altitude
	if alt <= 0 {
		alt = DefaultAltitude
	}
	c.Position = vectors.FromLatLng(v.Lat, v.Lng).Scale(Radius * (1.0 + alt))
	c.LookAtOrigin()
}

// SetViewport recomputes the orthographic half-extents from the surface's
// pixel dimensions so the globe stays fully visible and centered: the
// min(width,height)/margin pixels map to one globe radius.
func (c *Camera) SetViewport(width, height int, margin float64) {
	if width <= 0 || height <= 0 || margin <= 0 {
		return
	}
	m := width
	if height < m {
		m = height
	}
	halfPx := float64(m) / margin
	worldPerPx := Radius / halfPx
	c.XExtent = worldPerPx * float64(width) / 2.0
	c.YExtent = worldPerPx * float64(height) / 2.0
}

// Ray returns the origin and direction of the viewing ray for pixel (i,j)
// given the image dimensions. i,j can be fractional (for supersampling).
func (c *Camera) Ray(i, j float64, width, height int) (origin, dir vectors.Vec3) {
	w := float64(width)
	h := float64(height)

	// NDC in [-1, +1] (centered), flip Y to make +up in screen space.
	xNDC := (i - (w-1)/2.0) / ((w - 1) / 2.0)
	yNDC := -((j - (h-1)/2.0) / ((h - 1) / 2.0))

	origin = c.Position.
		Add(c.Right.Scale(xNDC * c.XExtent)).
		Add(c.Up.Scale(yNDC * c.YExtent))
	return origin, c.Forward
}

// ViewSpace maps a world direction into camera view space
// (x right, y up, z toward the viewer).
func (c *Camera) ViewSpace(v vectors.Vec3) vectors.Vec3 {
	return vectors.Vec3{
		X: v.Dot(c.Right),
		Y: v.Dot(c.Up),
		Z: -v.Dot(c.Forward),
	}
}

// WorldSpace is the inverse of ViewSpace for directions.
func (c *Camera) WorldSpace(v vectors.Vec3) vectors.Vec3 {
	return c.Right.Scale(v.X).
		Add(c.Up.Scale(v.Y)).
		Add(c.Forward.Scale(-v.Z))
}
