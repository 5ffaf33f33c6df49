// Package scene is a small retained-mode 3D scene graph.
// Entities are boxes and planes with a flat material; the scene is drawn as
// wireframe segments projected through a perspective camera, which hosts
// rasterize into a terminal screen or a window.
package scene

import (
	"github.com/vovakirdan/orchard/internal/core"
)

// Kind is the geometry of an entity.
type Kind int

const (
	KindBox Kind = iota
	KindPlane
)

// Material is the flat appearance of an entity.
type Material struct {
	Color core.Color
	Glyph rune // Terminal glyph; 0 picks a glyph from the line slope
}

// Entity is a piece of geometry that can be attached to a scene.
type Entity struct {
	Name string

	kind      Kind
	size      core.Vec3 // Box extents, or plane width (X) and depth (Z)
	divisions int       // Plane grid cells per side
	position  core.Vec3
	material  Material
	scene     *Scene
}

// NewBox creates an axis-aligned box centered on its position.
func NewBox(name string, width, height, depth float64, m Material) *Entity {
	return &Entity{
		Name:     name,
		kind:     KindBox,
		size:     core.V3(width, height, depth),
		material: m,
	}
}

// NewPlane creates a horizontal plane centered on its position, drawn as a
// grid with the given number of cells per side.
func NewPlane(name string, width, depth float64, divisions int, m Material) *Entity {
	if divisions < 1 {
		divisions = 1
	}
	return &Entity{
		Name:      name,
		kind:      KindPlane,
		size:      core.V3(width, 0, depth),
		divisions: divisions,
		material:  m,
	}
}

// Material returns the entity material.
func (e *Entity) Material() Material {
	return e.material
}

// Position returns the entity center.
func (e *Entity) Position() core.Vec3 {
	return e.position
}

// SetPosition moves the entity center.
func (e *Entity) SetPosition(p core.Vec3) {
	e.position = p
}

// Attached reports whether the entity is currently part of a scene.
func (e *Entity) Attached() bool {
	return e.scene != nil
}

// Edges returns the world-space line segments that outline the entity.
func (e *Entity) Edges() [][2]core.Vec3 {
	switch e.kind {
	case KindPlane:
		return e.planeEdges()
	default:
		return e.boxEdges()
	}
}

func (e *Entity) boxEdges() [][2]core.Vec3 {
	h := e.size.Scale(0.5)
	p := e.position

	var c [8]core.Vec3
	for i := range c {
		dx, dy, dz := -h.X, -h.Y, -h.Z
		if i&1 != 0 {
			dx = h.X
		}
		if i&2 != 0 {
			dy = h.Y
		}
		if i&4 != 0 {
			dz = h.Z
		}
		c[i] = p.Add(core.V3(dx, dy, dz))
	}

	// Corners differing in exactly one bit share an edge.
	edges := make([][2]core.Vec3, 0, 12)
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2]core.Vec3{c[i], c[i|bit]})
			}
		}
	}
	return edges
}

func (e *Entity) planeEdges() [][2]core.Vec3 {
	hw, hd := e.size.X/2, e.size.Z/2
	p := e.position
	n := e.divisions

	edges := make([][2]core.Vec3, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := p.X - hw + t*e.size.X
		z := p.Z - hd + t*e.size.Z
		edges = append(edges,
			[2]core.Vec3{core.V3(x, p.Y, p.Z-hd), core.V3(x, p.Y, p.Z+hd)},
			[2]core.Vec3{core.V3(p.X-hw, p.Y, z), core.V3(p.X+hw, p.Y, z)},
		)
	}
	return edges
}

// Scene holds the entities to draw, in draw order.
type Scene struct {
	entities []*Entity
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add attaches an entity at the end of the draw order.
// Adding an entity that is already in this scene does nothing; an entity
// attached elsewhere is detached from its old scene first.
func (s *Scene) Add(e *Entity) {
	if e == nil || e.scene == s {
		return
	}
	if e.scene != nil {
		e.scene.Remove(e)
	}
	e.scene = s
	s.entities = append(s.entities, e)
}

// Remove detaches an entity. Removing a detached entity does nothing.
func (s *Scene) Remove(e *Entity) {
	if e == nil || e.scene != s {
		return
	}
	for i, cur := range s.entities {
		if cur == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	e.scene = nil
}

// Entities returns the attached entities in draw order.
func (s *Scene) Entities() []*Entity {
	out := make([]*Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of attached entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Count returns how many attached entities carry the given name.
func (s *Scene) Count(name string) int {
	n := 0
	for _, e := range s.entities {
		if e.Name == name {
			n++
		}
	}
	return n
}
