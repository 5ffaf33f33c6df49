package scene

import (
	"math"

	"github.com/vovakirdan/orchard/internal/core"
)

// Segment is a projected edge ready to be rasterized.
type Segment struct {
	A, B     Point2
	Material Material
}

// Render projects every attached entity of the scene through the camera.
// Segments come out in draw order, clipped to the camera depth range and to
// the viewport.
func Render(s *Scene, c *Camera, vp Viewport) []Segment {
	var out []Segment
	for _, e := range s.entities {
		for _, edge := range e.Edges() {
			a, b := c.toView(edge[0]), c.toView(edge[1])
			a, b, ok := clipDepth(a, b, c.near, c.far)
			if !ok {
				continue
			}
			pa, pb := c.project(a, vp), c.project(b, vp)
			pa, pb, ok = clipRect(pa, pb, -1, -1, vp.Width+1, vp.Height+1)
			if !ok {
				continue
			}
			out = append(out, Segment{A: pa, B: pb, Material: e.material})
		}
	}
	return out
}

// clipDepth trims a camera-space segment to near <= Z <= far.
func clipDepth(a, b core.Vec3, near, far float64) (core.Vec3, core.Vec3, bool) {
	if a.Z < near && b.Z < near {
		return a, b, false
	}
	if a.Z > far && b.Z > far {
		return a, b, false
	}
	lerp := func(p, q core.Vec3, z float64) core.Vec3 {
		t := (z - p.Z) / (q.Z - p.Z)
		return p.Add(q.Sub(p).Scale(t))
	}
	if a.Z < near {
		a = lerp(a, b, near)
	} else if b.Z < near {
		b = lerp(b, a, near)
	}
	if a.Z > far {
		a = lerp(a, b, far)
	} else if b.Z > far {
		b = lerp(b, a, far)
	}
	return a, b, true
}

// clipRect clips a 2D segment to a rectangle (Liang-Barsky).
func clipRect(a, b Point2, minX, minY, maxX, maxY float64) (Point2, Point2, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}

	na := Point2{a.X + t0*dx, a.Y + t0*dy}
	nb := Point2{a.X + t1*dx, a.Y + t1*dy}
	return na, nb, true
}

// Draw rasterizes segments into a terminal screen in order, so later
// segments overwrite earlier ones.
func Draw(dst *core.Screen, segs []Segment) {
	for _, sg := range segs {
		x0, y0 := int(math.Floor(sg.A.X)), int(math.Floor(sg.A.Y))
		x1, y1 := int(math.Floor(sg.B.X)), int(math.Floor(sg.B.Y))
		glyph := sg.Material.Glyph
		if glyph == 0 {
			glyph = slopeGlyph(sg.B.X-sg.A.X, sg.B.Y-sg.A.Y)
		}
		dst.DrawLine(x0, y0, x1, y1, glyph, sg.Material.Color)
	}
}

// slopeGlyph picks a line character for a screen-space direction.
// Terminal rows are about twice as tall as columns, so dy counts double.
func slopeGlyph(dx, dy float64) rune {
	dy *= 2
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady < adx*0.4:
		return '-'
	case adx < ady*0.4:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}
