package geometry

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// triangleEpsilon rejects rays parallel to the triangle plane
const triangleEpsilon = 1e-7

// Triangle is a single triangle with a precomputed unit face normal
// following the right-hand rule over v0->v1, v0->v2.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Normal     core.Vec3
}

// NewTriangle creates a triangle and computes its normal
func NewTriangle(v0, v1, v2 core.Vec3) Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Normal: edge1.Cross(edge2).Normalize(),
	}
}

// Intersect tests the ray against the triangle using Moller-Trumbore.
// Returns the distance along the ray for hits with t > epsilon.
func (t Triangle) Intersect(ray core.Ray) (float64, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray parallel to the triangle plane
	if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	distance := f * edge2.Dot(q)
	if distance <= triangleEpsilon {
		return 0, false
	}
	return distance, true
}

// Area returns the triangle's surface area
func (t Triangle) Area() float64 {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return edge1.Cross(edge2).Length() * 0.5
}
