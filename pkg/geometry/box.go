package geometry

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// Box is a closed rectangular box built as a six-quad triangle mesh
type Box struct {
	Mesh
}

// NewBox creates a box standing on basePosition. up and side orient the
// local frame; width and depth span the base, height runs along up.
func NewBox(basePosition, up, side core.Vec3, width, depth, height float64, mat *material.Surface) *Box {
	b := &Box{Mesh: Mesh{Position: basePosition, Mat: mat}}
	b.owner = b

	up = up.Normalize()
	side = side.Normalize()

	localY := up
	localZ := side.Cross(up)
	localX := up.Cross(localZ)

	halfWidth := width / 2.0
	halfDepth := depth / 2.0

	base1 := localX.Multiply(halfWidth).Add(localZ.Multiply(halfDepth))
	base2 := localX.Multiply(halfWidth).Subtract(localZ.Multiply(halfDepth))
	base3 := localX.Multiply(-halfWidth).Subtract(localZ.Multiply(halfDepth))
	base4 := localX.Multiply(-halfWidth).Add(localZ.Multiply(halfDepth))

	top1 := base1.Add(localY.Multiply(height)).Add(basePosition)
	top2 := base2.Add(localY.Multiply(height)).Add(basePosition)
	top3 := base3.Add(localY.Multiply(height)).Add(basePosition)
	top4 := base4.Add(localY.Multiply(height)).Add(basePosition)

	base1 = base1.Add(basePosition)
	base2 = base2.Add(basePosition)
	base3 = base3.Add(basePosition)
	base4 = base4.Add(basePosition)

	b.AddQuad(base4, base3, base2, base1)
	b.AddQuad(top1, top2, top3, top4)
	b.AddQuad(base1, base2, top2, top1)
	b.AddQuad(base2, base3, top3, top2)
	b.AddQuad(base3, base4, top4, top3)
	b.AddQuad(base4, base1, top1, top4)

	b.Prepare()
	return b
}
