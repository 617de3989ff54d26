package globe

import (
	"errors"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/solwheel/astroglobe/colors"
	"github.com/solwheel/astroglobe/shade"
	"github.com/solwheel/astroglobe/vectors"
)

// ErrNotReady is returned when a frame is requested before Load completed.
var ErrNotReady = errors.New("globe not ready")

// markerCos bounds the angular footprint of a rendered marker (~1°).
var markerCos = math.Cos(1.0 * math.Pi / 180.0)

// Render raytraces the current view into a new image buffer. Rows are
// distributed over the configured number of workers.
func (g *SoftwareGlobe) Render() (*image.NRGBA, error) {
	if !g.ready.Load() {
		return nil, ErrNotReady
	}

	w, h := g.width, g.height
	cam := *g.cam // snapshot the pose for the whole frame
	offsets := supersampleOffsets(g.cfg.Supersample)
	invN := 1.0 / float64(len(offsets))
	sunWorld := cam.WorldSpace(g.shader.Light).Normalize()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	var eg errgroup.Group
	eg.SetLimit(g.cfg.Workers)
	for y := 0; y < h; y++ {
		eg.Go(func() error {
			for x := 0; x < w; x++ {
				acc := colors.Color4{}
				for _, off := range offsets {
					origin, dir := cam.Ray(float64(x)+off[0], float64(y)+off[1], w, h)
					acc = acc.Add(g.shadeRay(&cam, origin, dir, sunWorld))
				}

				out := acc.Scale(invN).
					Mul(g.cfg.Theme.Warm).
					BoostSaturation(g.cfg.Theme.Saturation).
					CompositeOverBlack()
				img.SetNRGBA(x, y, out.ToNRGBA())
			}
			return nil
		})
	}
	_ = eg.Wait() // rows never fail

	return img, nil
}

// shadeRay produces the color seen along one viewing ray.
func (g *SoftwareGlobe) shadeRay(cam *Camera, origin, dir, sunWorld vectors.Vec3) colors.Color4 {
	c := colors.Black()

	if t := intersectSphere(origin, dir, Radius); t > 0 {
		hit := origin.Add(dir.Scale(t))
		normal := hit.Normalize()
		c = g.shadeSurface(cam, normal, dir, sunWorld)
	}

	if g.cfg.Atmosphere {
		c = g.atmosphereOverlay(origin, dir, sunWorld, c)
	}
	return c
}

func (g *SoftwareGlobe) shadeSurface(cam *Camera, normal, rayDir, sunWorld vectors.Vec3) colors.Color4 {
	day := g.texDay.Sample(normal)
	night := g.texNight.Sample(normal)

	viewNormal := cam.ViewSpace(normal)
	c := g.shader.Blend(viewNormal, day, night)

	light := shade.Smoothstep(g.shader.LoEdge, g.shader.HiEdge, g.shader.Intensity(viewNormal))
	if g.hasClouds {
		c = shade.BlendClouds(c, g.texClouds.Sample(normal), light, g.cfg.Theme.CloudBoost)
	}
	if light > 0 {
		view := rayDir.Scale(-1).Normalize()
		c = c.Add(shade.SpecularHighlight(normal, view, sunWorld, day).Scale(light))
	}

	for _, m := range g.markers {
		if normal.Dot(vectors.FromLatLng(m.Lat, m.Lng)) > markerCos {
			c = c.Mix(colors.Red(), 0.85)
		}
	}
	return c
}

// atmosphereOverlay adds blue scattering along the view ray: Rayleigh-like
// density falloff, clipped against the ground and the planet's shadow.
func (g *SoftwareGlobe) atmosphereOverlay(origin, dir, sunWorld vectors.Vec3, base colors.Color4) colors.Color4 {
	const scaleHeight = 25.0 // km
	const maxHeight = 120.0  // km, atmosphere extent
	const rayleigh = 0.008   // scattering strength per lit km at sea level

	atmoRadius := Radius + maxHeight

	hitAtmo, tEntryAtmo, tExitAtmo := intersectSphereFull(origin, dir, atmoRadius)
	if !hitAtmo || tExitAtmo < 0 {
		return base
	}

	hitGround, tEntryGround, _ := intersectSphereFull(origin, dir, Radius)

	tMin := math.Max(0, tEntryAtmo)
	tMax := tExitAtmo
	if hitGround && tEntryGround > 0 && tEntryGround < tMax {
		tMax = tEntryGround
	}
	if tMax <= tMin {
		return base
	}

	litLen := tMax - tMin
	if hitShadow, tIn, tOut := intersectShadowCylinder(origin, dir, sunWorld, Radius); hitShadow {
		shadowStart := math.Max(tMin, tIn)
		shadowEnd := math.Min(tMax, tOut)
		if shadowEnd > shadowStart {
			litLen -= shadowEnd - shadowStart
		}
	}
	if litLen <= 0 {
		return base
	}

	tMid := (tMin + tMax) * 0.5
	midPoint := origin.Add(dir.Scale(tMid))
	avgDensity := math.Exp(-(midPoint.Norm() - Radius) / scaleHeight)

	amount := shade.Clip(litLen*avgDensity*rayleigh, 0.0, 1.0)
	return base.Mix(g.cfg.Theme.DayRim, amount)
}

// intersectSphere returns the closest positive t of the ray O + t*D against
// a sphere of radius r centered at the origin, or -1 if there is none.
func intersectSphere(o, d vectors.Vec3, r float64) float64 {
	b := 2.0 * o.Dot(d)
	c := o.Dot(o) - r*r

	disc := b*b - 4.0*c
	if disc < 0 {
		return -1.0
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / 2.0
	t2 := (-b + sqrtDisc) / 2.0

	if t1 > 0 {
		return t1
	}
	if t2 > 0 {
		return t2
	}
	return -1.0
}

// intersectSphereFull returns both intersection parameters.
func intersectSphereFull(o, d vectors.Vec3, r float64) (hit bool, tEntry, tExit float64) {
	b := 2.0 * o.Dot(d)
	c := o.Dot(o) - r*r

	disc := b*b - 4.0*c
	if disc < 0 {
		return false, 0, 0
	}

	sqrtDisc := math.Sqrt(disc)
	return true, (-b - sqrtDisc) / 2.0, (-b + sqrtDisc) / 2.0
}

// intersectShadowCylinder intersects the ray with the planet's umbral
// cylinder: the infinite cylinder of the globe's radius extending away from
// the sun.
func intersectShadowCylinder(rayOrigin, rayDir, sunDir vectors.Vec3, radius float64) (bool, float64, float64) {
	axis := sunDir.Normalize().Scale(-1)

	dDotV := rayDir.Dot(axis)
	dPerp := rayDir.Sub(axis.Scale(dDotV))

	coDotV := rayOrigin.Dot(axis)
	coPerp := rayOrigin.Sub(axis.Scale(coDotV))

	a := dPerp.Dot(dPerp)
	b := 2 * dPerp.Dot(coPerp)
	c := coPerp.Dot(coPerp) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return false, 0, 0
	}

	sqrtD := math.Sqrt(disc)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t1 < 0 {
		return false, 0, 0
	}

	// Only the half-space behind the planet is in shadow.
	if rayOrigin.Add(rayDir.Scale(t0)).Dot(axis) < 0 {
		return false, 0, 0
	}

	return true, math.Max(0, t0), t1
}

// supersampleOffsets returns n×n offsets in [-0.5, +0.5] with pixel-center
// spacing.
func supersampleOffsets(n int) [][2]float64 {
	if n <= 0 {
		return [][2]float64{{0, 0}}
	}
	step := 1.0 / float64(n)
	out := make([][2]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx := (float64(i)+0.5)*step - 0.5
			dy := (float64(j)+0.5)*step - 0.5
			out = append(out, [2]float64{dx, dy})
		}
	}
	return out
}
