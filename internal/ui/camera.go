package ui

import (
	"image"
	"math"

	"github.com/ingyamilmolinar/holostack/internal/utils"
)

// Camera is a fixed perspective camera. Its pose never changes at runtime;
// the stack moves under it instead.
type Camera struct {
	Pos      utils.Vec3
	Pitch    float64 // rotation about X, radians
	Yaw      float64 // rotation about Y, radians
	FOV      float64 // vertical field of view, radians
	Near     float64
	Far      float64
	Viewport image.Rectangle
}

func NewCamera() *Camera {
	return &Camera{
		Pos:   utils.V3(-3.0, 2.6, 8.2),
		Pitch: -0.18,
		Yaw:   -0.26,
		FOV:   42 * math.Pi / 180,
		Near:  0.1,
		Far:   100,
	}
}

// View moves a world point into camera space. The camera orientation is the
// X-then-Y Euler rotation, so its inverse undoes X first and Y second.
func (c *Camera) View(p utils.Vec3) utils.Vec3 {
	return p.Sub(c.Pos).RotX(-c.Pitch).RotY(-c.Yaw)
}

// Project converts a world point to screen pixels inside the viewport.
// depth is the distance along the view axis; ok is false for points outside
// the near/far range.
func (c *Camera) Project(p utils.Vec3) (x, y, depth float64, ok bool) {
	v := c.View(p)
	depth = -v.Z
	if depth < c.Near || depth > c.Far || c.Viewport.Empty() {
		return 0, 0, depth, false
	}
	w, h := float64(c.Viewport.Dx()), float64(c.Viewport.Dy())
	f := 1 / math.Tan(c.FOV/2)
	ndcX := v.X * f / (w / h) / depth
	ndcY := v.Y * f / depth
	x = float64(c.Viewport.Min.X) + (ndcX+1)/2*w
	y = float64(c.Viewport.Min.Y) + (1-ndcY)/2*h
	return x, y, depth, true
}

// Fresnel is the grazing-angle term of a surface point with normal n:
// 0 facing the camera, rising toward 1 edge-on.
func (c *Camera) Fresnel(p, n utils.Vec3) float64 {
	vdotn := utils.Clamp(c.Pos.Sub(p).Normalize().Dot(n.Normalize()), 0, 1)
	return (1 - vdotn) * (1 - vdotn)
}

// FogAmount is the linear fog factor at depth, 0 before start, 1 past end.
func FogAmount(depth, start, end float64) float64 {
	return utils.Clamp((depth-start)/(end-start), 0, 1)
}
