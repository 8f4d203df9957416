package geometry

import (
	"math"
	"testing"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

func TestTriangle_Normal(t *testing.T) {
	// Right-hand rule over v0->v1, v0->v2
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)
	if tri.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected normal (0,0,1), got %v", tri.Normal)
	}
}

func TestTriangle_Intersect(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{
			name:      "through centroid",
			ray:       core.NewRay(core.NewVec3(0, -0.2, 2), core.NewVec3(0, 0, -1)),
			expectHit: true,
			expectedT: 2,
		},
		{
			name:      "outside edge",
			ray:       core.NewRay(core.NewVec3(2, 0, 2), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "parallel to plane",
			ray:       core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0)),
			expectHit: false,
		},
		{
			name:      "behind origin",
			ray:       core.NewRay(core.NewVec3(0, -0.2, -2), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, ok := tri.Intersect(tt.ray)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if ok && math.Abs(distance-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, distance)
			}
		})
	}
}

func TestTriangle_HitPointInsideBarycentric(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 1),
		core.NewVec3(2, 0, 1),
		core.NewVec3(1, 2, 1),
	)
	rng := core.NewUniformRandomSeeded(3)

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(rng.Float64Range(-1, 3), rng.Float64Range(-1, 3), 5)
		ray := core.NewRay(origin, core.NewVec3(0, 0, -1))

		distance, ok := tri.Intersect(ray)
		if !ok {
			continue
		}

		// Recover barycentric coordinates of the hit point
		point := ray.At(distance)
		edge1 := tri.V1.Subtract(tri.V0)
		edge2 := tri.V2.Subtract(tri.V0)
		toPoint := point.Subtract(tri.V0)

		d00 := edge1.Dot(edge1)
		d01 := edge1.Dot(edge2)
		d11 := edge2.Dot(edge2)
		d20 := toPoint.Dot(edge1)
		d21 := toPoint.Dot(edge2)
		denom := d00*d11 - d01*d01

		u := (d11*d20 - d01*d21) / denom
		v := (d00*d21 - d01*d20) / denom
		w := 1 - u - v

		const tolerance = 1e-6
		if u < -tolerance || u > 1+tolerance ||
			v < -tolerance || v > 1+tolerance ||
			w < -tolerance || w > 1+tolerance {
			t.Fatalf("Barycentric coordinates outside [0,1]: u=%v v=%v w=%v", u, v, w)
		}
	}
}

func TestTriangle_Area(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
	)
	if math.Abs(tri.Area()-2.0) > 1e-12 {
		t.Errorf("Expected area 2, got %v", tri.Area())
	}
}
