package motion

import "math"

// epsilon is the residual below which a damped value snaps to its target.
const epsilon = 1e-6

// Damp moves v toward t by exponential decay at rate (1/s) over dt seconds:
//
//	v' = t + (v - t) * exp(-rate*dt)
//
// The result lies between v and t, so it never overshoots however large dt
// is. Negative or NaN dt is treated as zero and an infinite dt converges.
func Damp(v, t, rate, dt float64) float64 {
	if math.IsNaN(dt) || dt <= 0 || rate <= 0 {
		return v
	}
	if math.IsInf(dt, 1) {
		return t
	}
	k := math.Exp(-rate * dt)
	out := t + (v-t)*k
	if math.Abs(out-t) < epsilon {
		return t
	}
	return out
}

// Vec2 is a 2D value such as a surface UV or a tilt pair.
type Vec2 struct{ X, Y float64 }

// Center is the middle of a card surface in UV space.
var Center = Vec2{0.5, 0.5}

func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// DampVec2 damps each component independently.
func DampVec2(v, t Vec2, rate, dt float64) Vec2 {
	return Vec2{Damp(v.X, t.X, rate, dt), Damp(v.Y, t.Y, rate, dt)}
}
