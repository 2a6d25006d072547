package utils

import "math"

// Vec3 is a point or direction in scene space. Y is up and the camera looks
// down -Z, as in most right-handed 3D conventions.
type Vec3 struct{ X, Y, Z float64 }

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3     { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3     { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float64) Vec3  { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64  { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64        { return math.Sqrt(v.Dot(v)) }
func (v Vec3) RotX(a float64) Vec3 { s, c := math.Sincos(a); return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c} }
func (v Vec3) RotY(a float64) Vec3 { s, c := math.Sincos(a); return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c} }

// Normalize returns v scaled to unit length, or the zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
