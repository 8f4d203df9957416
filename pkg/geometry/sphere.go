package geometry

import (
	"math"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// degenerateRadius is the threshold below which a sphere stops intersecting
// rays. A zero-radius emissive sphere acts as a point light.
const degenerateRadius = 1e-7

// Sphere is an implicit sphere object
type Sphere struct {
	Position core.Vec3
	Radius   float64
	Mat      *material.Surface

	aabb core.AABB
}

// NewSphere creates a sphere at the given position
func NewSphere(position core.Vec3, radius float64, mat *material.Surface) *Sphere {
	s := &Sphere{Position: position, Radius: radius, Mat: mat}
	s.Prepare()
	return s
}

// Intersect tests the ray against the sphere using the geometric
// tca/thc formulation and returns the smallest positive distance.
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	if s.Radius < degenerateRadius {
		return Hit{}, false
	}

	l := s.Position.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)
	radiusSq := s.Radius * s.Radius
	// A center behind the origin rules out a hit only when the origin lies
	// outside the sphere
	if tca < 0 && l.Dot(l) > radiusSq {
		return Hit{}, false
	}

	distanceSq := l.Dot(l) - tca*tca
	if distanceSq > radiusSq {
		return Hit{}, false
	}

	thc := math.Sqrt(radiusSq - distanceSq)
	t := tca - thc
	if t < 0 {
		t = tca + thc
		if t < 0 {
			return Hit{}, false
		}
	}

	return Hit{Object: s, ElementIndex: 0, Distance: t}, true
}

// NormalAt returns the outward unit normal at a surface point
func (s *Sphere) NormalAt(point core.Vec3, _ int) core.Vec3 {
	return point.Subtract(s.Position).Normalize()
}

// SamplePoint returns a uniformly distributed point on the sphere surface
// via the inverse CDF: theta = 2*pi*u, phi = acos(2v - 1).
func (s *Sphere) SamplePoint(rng *core.UniformRandom) core.Vec3 {
	u := rng.Float64()
	v := rng.Float64()
	theta := 2 * math.Pi * u
	phi := math.Acos(2*v - 1)
	sinPhi := math.Sin(phi)
	return core.Vec3{
		X: s.Position.X + s.Radius*sinPhi*math.Cos(theta),
		Y: s.Position.Y + s.Radius*sinPhi*math.Sin(theta),
		Z: s.Position.Z + s.Radius*math.Cos(phi),
	}
}

// Area returns the sphere's surface area; zero for point lights
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Surface returns the sphere's material
func (s *Sphere) Surface() *material.Surface {
	return s.Mat
}

// BoundingBox returns the cached AABB
func (s *Sphere) BoundingBox() core.AABB {
	return s.aabb
}

// Prepare recomputes the AABB from position and radius
func (s *Sphere) Prepare() {
	extent := core.NewVec3(s.Radius, s.Radius, s.Radius)
	s.aabb = core.NewAABB(s.Position.Subtract(extent), s.Position.Add(extent))
}
