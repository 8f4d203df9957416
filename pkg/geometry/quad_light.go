package geometry

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// lightSurfaceOffset moves the plane that sample points are drawn from this
// far along the light's normal. The backing triangles used for
// intersection stay at the given position.
const lightSurfaceOffset = 1e-4

// QuadLight is a rectangular area light. Intersection is backed by a
// two-triangle mesh; sampling is uniform over the rectangle.
type QuadLight struct {
	Mesh
	Normal  core.Vec3
	XVector core.Vec3 // half-extent along the quad's local x
	YVector core.Vec3 // half-extent along the quad's local y

	quadArea float64
}

// NewQuadLight creates a quad light centered at position, facing along
// direction, with the given side orientation and full dimensions (w, h).
func NewQuadLight(position, direction, side core.Vec3, width, height float64, mat *material.Surface) *QuadLight {
	q := &QuadLight{Mesh: Mesh{Mat: mat}}
	q.owner = q

	q.Normal = direction.Normalize()
	q.YVector = side.Cross(q.Normal).Normalize()
	q.XVector = q.YVector.Cross(q.Normal).Normalize()

	q.XVector = q.XVector.Multiply(width / 2.0)
	q.YVector = q.YVector.Multiply(height / 2.0)

	p1 := position.Subtract(q.XVector).Subtract(q.YVector)
	p2 := position.Subtract(q.XVector).Add(q.YVector)
	p3 := position.Add(q.XVector).Add(q.YVector)
	p4 := position.Add(q.XVector).Subtract(q.YVector)

	q.Position = position.Add(q.Normal.Multiply(lightSurfaceOffset))
	q.AddQuad(p1, p2, p3, p4)

	q.quadArea = width * height
	q.Prepare()
	return q
}

// NormalAt returns the light's facing normal regardless of which backing
// triangle was hit
func (q *QuadLight) NormalAt(_ core.Vec3, _ int) core.Vec3 {
	return q.Normal
}

// SamplePoint returns a uniformly distributed point on the rectangle
func (q *QuadLight) SamplePoint(rng *core.UniformRandom) core.Vec3 {
	u := rng.Float64()
	v := rng.Float64()
	corner := q.Position.Subtract(q.XVector).Subtract(q.YVector)
	return corner.Add(q.XVector.Multiply(2 * u)).Add(q.YVector.Multiply(2 * v))
}

// Area returns the rectangle area (width * height)
func (q *QuadLight) Area() float64 {
	return q.quadArea
}
