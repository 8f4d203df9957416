package geometry

import (
	"math"
	"sort"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

const subnodeCount = 8

// maxSubdivisionDepth caps recursion; nodes at the cap stay leaves no
// matter how many objects they hold.
const maxSubdivisionDepth = 8

// Octree accelerates ray-vs-scene queries by recursive spatial partition.
// Objects are inserted by AABB overlap, so an object spanning several
// octants appears in every overlapping leaf; queries de-duplicate by
// keeping the globally nearest hit.
type Octree struct {
	aabb     core.AABB
	objects  []Object
	subnodes *[subnodeCount]*Octree
	maxCount int
	depth    int
}

// NewOctree creates an empty octree. maxCount is the number of objects a
// node holds before it subdivides; values below 1 become 1.
func NewOctree(maxCount int) *Octree {
	if maxCount < 1 {
		maxCount = 1
	}
	return &Octree{maxCount: maxCount}
}

// Fill rebuilds the tree from the given objects. The root AABB is the
// union of all object AABBs.
func (o *Octree) Fill(objects []Object) {
	o.subnodes = nil
	o.objects = append([]Object(nil), objects...)

	if len(o.objects) == 0 {
		o.aabb = core.AABB{}
		return
	}

	box := o.objects[0].BoundingBox()
	for _, obj := range o.objects[1:] {
		box = box.Encapsulate(obj.BoundingBox())
	}
	o.aabb = box

	if len(o.objects) > o.maxCount {
		o.subdivide()
	}
}

// BoundingBox returns the tree's root AABB
func (o *Octree) BoundingBox() core.AABB {
	return o.aabb
}

// insertIfOverlaps adds the object to this node when their AABBs overlap,
// recursing into subdivided nodes and splitting full leaves.
func (o *Octree) insertIfOverlaps(obj Object) {
	if !o.aabb.Overlaps(obj.BoundingBox()) {
		return
	}

	o.addUnique(obj)

	if o.subnodes != nil {
		for _, child := range o.subnodes {
			child.insertIfOverlaps(obj)
		}
	} else if len(o.objects) > o.maxCount {
		o.subdivide()
	}
}

func (o *Octree) addUnique(obj Object) {
	for _, existing := range o.objects {
		if existing == obj {
			return
		}
	}
	o.objects = append(o.objects, obj)
}

// subdivide splits the node into eight equal octants about the box
// midpoint. If every child would overlap every object the split cannot
// separate anything; the node stays a leaf to avoid infinite recursion.
// Nodes at the depth cap stay leaves as well.
func (o *Octree) subdivide() {
	if o.depth >= maxSubdivisionDepth {
		return
	}

	mid := o.aabb.Center()
	var subnodes [subnodeCount]*Octree

	i := 0
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				child := NewOctree(o.maxCount)
				child.aabb = octantBox(o.aabb, mid, x, y, z)
				child.depth = o.depth + 1
				subnodes[i] = child
				i++
			}
		}
	}

	overlapCount := 0
	for _, obj := range o.objects {
		for _, child := range subnodes {
			if child.aabb.Overlaps(obj.BoundingBox()) {
				overlapCount++
			}
		}
	}
	if overlapCount >= len(o.objects)*subnodeCount {
		return
	}

	o.subnodes = &subnodes
	for _, obj := range o.objects {
		for _, child := range subnodes {
			child.insertIfOverlaps(obj)
		}
	}
}

// octantBox returns the octant of box selected by x,y,z in {0,1},
// split about mid.
func octantBox(box core.AABB, mid core.Vec3, x, y, z int) core.AABB {
	min := box.Min
	max := box.Max

	var child core.AABB
	if x == 0 {
		child.Min.X, child.Max.X = min.X, mid.X
	} else {
		child.Min.X, child.Max.X = mid.X, max.X
	}
	if y == 0 {
		child.Min.Y, child.Max.Y = min.Y, mid.Y
	} else {
		child.Min.Y, child.Max.Y = mid.Y, max.Y
	}
	if z == 0 {
		child.Min.Z, child.Max.Z = min.Z, mid.Z
	} else {
		child.Min.Z, child.Max.Z = mid.Z, max.Z
	}
	return child
}

// Intersect finds the nearest object hit along the ray, or false on miss
func (o *Octree) Intersect(ray core.Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	o.intersect(ray, &best)
	return best, best.Object != nil
}

type childEntry struct {
	node     *Octree
	distance float64
}

// intersect walks the tree carrying the best-so-far hit. Children are
// visited nearest-first; the walk stops once the best hit is closer than
// the next child's AABB entry distance.
func (o *Octree) intersect(ray core.Ray, best *Hit) {
	if _, hit := o.aabb.IntersectRay(ray); !hit {
		return
	}

	if o.subnodes == nil {
		for _, obj := range o.objects {
			if hit, ok := obj.Intersect(ray); ok && hit.Distance < best.Distance {
				*best = hit
			}
		}
		return
	}

	var entries [subnodeCount]childEntry
	count := 0
	for _, child := range o.subnodes {
		if distance, hit := child.aabb.IntersectRay(ray); hit {
			entries[count] = childEntry{node: child, distance: distance}
			count++
		}
	}

	ordered := entries[:count]
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].distance < ordered[j].distance
	})

	for _, entry := range ordered {
		// Every hit in this child lies at or beyond its entry distance, so
		// a closer best hit ends the walk.
		if best.Object != nil && best.Distance < entry.distance {
			return
		}
		entry.node.intersect(ray, best)
	}
}
