package geometry

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// Object is the capability set shared by everything that can live in a
// scene: spheres, triangle meshes, boxes and light quads. Lights are not a
// separate type; an object is a light when its surface is emissive.
type Object interface {
	// Intersect tests the ray against the object and returns the nearest
	// positive hit along it.
	Intersect(ray core.Ray) (Hit, bool)

	// NormalAt returns the unit surface normal at a point previously
	// produced by Intersect. elementIndex identifies the triangle for
	// polygonal objects and is ignored by implicit ones.
	NormalAt(point core.Vec3, elementIndex int) core.Vec3

	// SamplePoint returns a uniformly distributed random point on the
	// object's surface. Used by the direct-light estimator.
	SamplePoint(rng *core.UniformRandom) core.Vec3

	// Area returns the total surface area. Zero means the object cannot be
	// sampled as an area light.
	Area() float64

	// Surface returns the object's material.
	Surface() *material.Surface

	// BoundingBox returns the AABB computed by the last Prepare call.
	BoundingBox() core.AABB

	// Prepare recomputes cached state (AABB, area) before rendering.
	Prepare()
}

// Hit identifies the nearest intersection between a ray and an object
type Hit struct {
	Object       Object
	ElementIndex int
	Distance     float64
}

// IsLight reports whether the object emits light
func IsLight(obj Object) bool {
	return obj.Surface().IsEmissive()
}
