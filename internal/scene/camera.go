package scene

import (
	"math"

	"github.com/vovakirdan/orchard/internal/core"
)

var worldUp = core.V3(0, 1, 0)

// Camera is a perspective camera aimed at a target point.
type Camera struct {
	Position core.Vec3

	target core.Vec3
	fov    float64 // Vertical field of view in degrees
	near   float64
	far    float64
}

// Perspective creates a camera with a vertical field of view in
// degrees and near/far clip distances.
func Perspective(fov, near, far float64) *Camera {
	return &Camera{
		target: core.V3(0, 0, -1),
		fov:    fov,
		near:   near,
		far:    far,
	}
}

// LookAt aims the camera at a world-space point.
func (c *Camera) LookAt(target core.Vec3) {
	c.target = target
}

// Target returns the point the camera is aimed at.
func (c *Camera) Target() core.Vec3 {
	return c.target
}

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 {
	return c.fov
}

// basis returns the camera right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward core.Vec3) {
	forward = c.target.Sub(c.Position).Normalize()
	right = forward.Cross(worldUp)
	if right.Len() < 1e-9 {
		// Looking straight up or down; any horizontal right works.
		right = core.V3(1, 0, 0)
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// toView converts a world point to camera space: X right, Y up, Z depth
// along the view direction (positive in front of the camera).
func (c *Camera) toView(p core.Vec3) core.Vec3 {
	right, up, forward := c.basis()
	d := p.Sub(c.Position)
	return core.V3(d.Dot(right), d.Dot(up), d.Dot(forward))
}

// Viewport describes the render target.
type Viewport struct {
	Width, Height float64
	// CellAspect is the height/width ratio of one target cell: about 2 for
	// terminal characters, 1 for pixels.
	CellAspect float64
}

func (v Viewport) aspect() float64 {
	ca := v.CellAspect
	if ca <= 0 {
		ca = 1
	}
	if v.Height <= 0 {
		return 1
	}
	return v.Width / (v.Height * ca)
}

// Point2 is a position on the render target.
type Point2 struct {
	X, Y float64
}

// project maps a camera-space point (depth > 0) to viewport coordinates.
func (c *Camera) project(v core.Vec3, vp Viewport) Point2 {
	tanHalf := math.Tan(c.fov * math.Pi / 360)
	ndcX := v.X / (v.Z * tanHalf * vp.aspect())
	ndcY := v.Y / (v.Z * tanHalf)
	return Point2{
		X: (ndcX + 1) / 2 * vp.Width,
		Y: (1 - ndcY) / 2 * vp.Height,
	}
}

// Project maps a world point to viewport coordinates.
// ok is false when the point lies outside the near/far range.
func (c *Camera) Project(p core.Vec3, vp Viewport) (pt Point2, ok bool) {
	v := c.toView(p)
	if v.Z < c.near || v.Z > c.far {
		return Point2{}, false
	}
	return c.project(v, vp), true
}
