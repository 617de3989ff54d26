package vectors

import "math"

// Vec3 is a simple 3D vector with float64 components.
type Vec3 struct {
	X, Y, Z float64
}

func Zero() Vec3 {
	return Vec3{X: 0.0, Y: 0.0, Z: 0.0}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the Euclidean length ||v||.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector v / ||v||.
// If ||v|| == 0, it returns the zero vector (0,0,0).
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	inv := 1.0 / n
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// RotateAround applies Rodrigues' rotation formula: rotate v around the unit
// axis by theta radians.
func (v Vec3) RotateAround(axis Vec3, theta float64) Vec3 {
	c, s := math.Cos(theta), math.Sin(theta)
	// v*cos + (axis x v)*sin + axis*(axis·v)*(1-cos)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1.0 - c)))
}

// FromLatLng converts latitude/longitude (degrees, spherical model) into a
// unit vector in the globe's Y-up frame: +Y is the north pole, +Z pierces
// the surface at (0°, 0°) and +X at (0°, 90°E).
func FromLatLng(latDeg, lngDeg float64) Vec3 {
	lat := latDeg * math.Pi / 180.0
	lng := lngDeg * math.Pi / 180.0
	return Vec3{
		X: math.Cos(lat) * math.Sin(lng),
		Y: math.Sin(lat),
		Z: math.Cos(lat) * math.Cos(lng),
	}
}

// ToLatLng is the inverse of FromLatLng for unit vectors, returning degrees.
func (v Vec3) ToLatLng() (latDeg, lngDeg float64) {
	lat := math.Atan2(v.Y, math.Sqrt(v.X*v.X+v.Z*v.Z))
	lng := math.Atan2(v.X, v.Z)
	return lat * 180.0 / math.Pi, lng * 180.0 / math.Pi
}
