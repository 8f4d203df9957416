package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBCentered creates an AABB from a center point and full dimensions
func NewAABBCentered(center, dimensions Vec3) AABB {
	half := dimensions.Multiply(0.5)
	return AABB{Min: center.Subtract(half), Max: center.Add(half)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = box.EncapsulatePoint(point)
	}
	return box
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if min <= max for all axes
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// EncapsulatePoint returns an AABB grown to contain the point
func (aabb AABB) EncapsulatePoint(point Vec3) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, point.X),
			Y: math.Min(aabb.Min.Y, point.Y),
			Z: math.Min(aabb.Min.Z, point.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, point.X),
			Y: math.Max(aabb.Max.Y, point.Y),
			Z: math.Max(aabb.Max.Z, point.Z),
		},
	}
}

// Encapsulate returns an AABB grown to contain another AABB
func (aabb AABB) Encapsulate(other AABB) AABB {
	return aabb.EncapsulatePoint(other.Min).EncapsulatePoint(other.Max)
}

// Contains reports whether the point lies inside the box (inclusive)
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Overlaps reports whether two boxes intersect, using the center/extent form
func (aabb AABB) Overlaps(other AABB) bool {
	center := aabb.Center()
	otherCenter := other.Center()
	ext := aabb.Max.Subtract(center)
	otherExt := other.Max.Subtract(otherCenter)

	if math.Abs(center.X-otherCenter.X) > ext.X+otherExt.X {
		return false
	}
	if math.Abs(center.Y-otherCenter.Y) > ext.Y+otherExt.Y {
		return false
	}
	return math.Abs(center.Z-otherCenter.Z) <= ext.Z+otherExt.Z
}

// IntersectRay tests the ray against the box using the slab method and
// returns the entry distance. A grazing ray with tmax == tmin counts as a
// hit; a box entirely behind the origin does not.
func (aabb AABB) IntersectRay(ray Ray) (float64, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64
		switch axis {
		case 0:
			min, max = aabb.Min.X, aabb.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			min, max = aabb.Min.Y, aabb.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			min, max = aabb.Min.Z, aabb.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		if direction == 0 {
			continue
		}

		t1 := (min - origin) / direction
		t2 := (max - origin) / direction
		tMin = math.Max(tMin, math.Min(t1, t2))
		tMax = math.Min(tMax, math.Max(t1, t2))
	}

	if tMax < tMin || tMax < 0 {
		return tMax, false
	}
	return tMin, true
}
