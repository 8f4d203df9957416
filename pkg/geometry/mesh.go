package geometry

import (
	"math"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// Mesh is a triangle-list object with a cached AABB
type Mesh struct {
	Position  core.Vec3
	Triangles []Triangle
	Mat       *material.Surface

	// owner is reported in hits when the mesh backs a wrapping object
	// (Box, QuadLight), so identity checks and normal dispatch reach the
	// outer type.
	owner Object

	aabb core.AABB
	area float64
}

// NewMesh creates an empty mesh
func NewMesh(mat *material.Surface) *Mesh {
	return &Mesh{Mat: mat}
}

// AddTriangle appends one triangle
func (m *Mesh) AddTriangle(v0, v1, v2 core.Vec3) {
	m.Triangles = append(m.Triangles, NewTriangle(v0, v1, v2))
}

// AddQuad appends a quad as two triangles. The points must be given in
// counter-clockwise order with respect to the intended normal.
func (m *Mesh) AddQuad(p1, p2, p3, p4 core.Vec3) {
	m.AddTriangle(p1, p2, p3)
	m.AddTriangle(p3, p4, p1)
}

// SetTriangles replaces the triangle list with loader-supplied vertex
// triples, for example from an OBJ triangle source.
func (m *Mesh) SetTriangles(triples [][3]core.Vec3) {
	m.Triangles = m.Triangles[:0]
	for _, t := range triples {
		m.AddTriangle(t[0], t[1], t[2])
	}
}

// Intersect tests the ray against the mesh: AABB first, then a linear scan
// over triangles keeping the nearest hit's index and distance.
func (m *Mesh) Intersect(ray core.Ray) (Hit, bool) {
	if _, hit := m.aabb.IntersectRay(ray); !hit {
		return Hit{}, false
	}

	nearest := math.Inf(1)
	nearestIndex := -1
	for i, triangle := range m.Triangles {
		if distance, hit := triangle.Intersect(ray); hit && distance < nearest {
			nearest = distance
			nearestIndex = i
		}
	}

	if nearestIndex < 0 {
		return Hit{}, false
	}
	return Hit{Object: m.self(), ElementIndex: nearestIndex, Distance: nearest}, true
}

func (m *Mesh) self() Object {
	if m.owner != nil {
		return m.owner
	}
	return m
}

// NormalAt returns the face normal of the hit triangle
func (m *Mesh) NormalAt(_ core.Vec3, elementIndex int) core.Vec3 {
	return m.Triangles[elementIndex].Normal
}

// SamplePoint returns a random point on the mesh. Triangles are selected
// proportionally to their area, then sampled uniformly by barycentric
// coordinates.
func (m *Mesh) SamplePoint(rng *core.UniformRandom) core.Vec3 {
	if len(m.Triangles) == 0 {
		return m.Position
	}

	target := rng.Float64() * m.area
	index := 0
	for i, t := range m.Triangles {
		target -= t.Area()
		if target <= 0 {
			index = i
			break
		}
	}

	t := m.Triangles[index]
	u := rng.Float64()
	v := rng.Float64()
	if u+v > 1 {
		u = 1 - u
		v = 1 - v
	}
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return t.V0.Add(edge1.Multiply(u)).Add(edge2.Multiply(v))
}

// Area returns the summed triangle area from the last Prepare call
func (m *Mesh) Area() float64 {
	return m.area
}

// Surface returns the mesh material
func (m *Mesh) Surface() *material.Surface {
	return m.Mat
}

// BoundingBox returns the cached AABB
func (m *Mesh) BoundingBox() core.AABB {
	return m.aabb
}

// Prepare recomputes the AABB by encapsulating every vertex, and the
// total area.
func (m *Mesh) Prepare() {
	if len(m.Triangles) == 0 {
		m.aabb = core.NewAABBCentered(m.Position, core.Vec3{})
		m.area = 0
		return
	}

	box := core.NewAABBFromPoints(m.Triangles[0].V0)
	area := 0.0
	for _, t := range m.Triangles {
		box = box.EncapsulatePoint(t.V0)
		box = box.EncapsulatePoint(t.V1)
		box = box.EncapsulatePoint(t.V2)
		area += t.Area()
	}
	m.aabb = box
	m.area = area
}
