// Package solar computes the sun's apparent position over the Earth:
// the subsolar point (longitude and declination) for any instant, plus the
// sun direction vector in ECEF. Accuracy is sub-degree, enough for a smooth
// terminator and seasonal camera tilt; this is not a navigation ephemeris.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/solwheel/astroglobe/vectors"
)

// MaxDeclinationDeg is the Earth's axial tilt, the physical bound on the
// sun's declination.
const MaxDeclinationDeg = 23.44

// Position is the subsolar point: where the sun is directly overhead.
type Position struct {
	// LongitudeDeg is the subsolar longitude, normalized into (-180, 180].
	LongitudeDeg float64
	// DeclinationDeg equals the subsolar latitude, within
	// [-MaxDeclinationDeg, MaxDeclinationDeg].
	DeclinationDeg float64
}

// PositionAt returns the subsolar point at t. Deterministic and total over
// finite times.
func PositionAt(t time.Time) Position {
	ra, dec, gmst := apparentSun(t)
	return Position{
		LongitudeDeg:   NormalizeLng((ra - gmst) * 180.0 / math.Pi),
		DeclinationDeg: clampDeclination(dec * 180.0 / math.Pi),
	}
}

// DeclinationAt returns the sun's declination in degrees at t.
func DeclinationAt(t time.Time) float64 {
	return PositionAt(t).DeclinationDeg
}

// SubsolarLongitude returns the longitude in degrees at which the sun is
// overhead at t, in (-180, 180].
func SubsolarLongitude(t time.Time) float64 {
	return PositionAt(t).LongitudeDeg
}

// DirectionECEF returns the unit vector from Earth's center toward the sun
// in Earth-centered Earth-fixed coordinates (+Z polar axis, +X toward the
// Greenwich meridian).
func DirectionECEF(t time.Time) vectors.Vec3 {
	ra, dec, gmst := apparentSun(t)

	// Unit vector in ECI (Earth-centered inertial)
	x := math.Cos(dec) * math.Cos(ra)
	y := math.Cos(dec) * math.Sin(ra)
	z := math.Sin(dec)

	// Rotate ECI → ECEF using GMST
	cosG := math.Cos(gmst)
	sinG := math.Sin(gmst)

	return vectors.Vec3{
		X: x*cosG + y*sinG,
		Y: -x*sinG + y*cosG,
		Z: z,
	}
}

// apparentSun returns the sun's apparent right ascension and declination and
// the apparent Greenwich sidereal time, all in radians.
func apparentSun(t time.Time) (ra, dec, gmst float64) {
	jd := julian.TimeToJD(t.UTC())
	a, d := solar.ApparentEquatorial(jd)
	g := sidereal.Apparent0UT(jd)
	return a.Rad(), d.Rad(), g.Angle().Rad()
}

// NormalizeLng wraps a longitude in degrees into (-180, 180], preserving the
// physical bearing modulo 360.
func NormalizeLng(deg float64) float64 {
	d := math.Mod(deg, 360.0)
	if d <= -180.0 {
		d += 360.0
	} else if d > 180.0 {
		d -= 360.0
	}
	return d
}

func clampDeclination(deg float64) float64 {
	if deg > MaxDeclinationDeg {
		return MaxDeclinationDeg
	}
	if deg < -MaxDeclinationDeg {
		return -MaxDeclinationDeg
	}
	return deg
}
