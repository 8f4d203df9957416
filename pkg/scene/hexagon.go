package scene

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/geometry"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// HexagonRoom is a six-walled room with colored walls, used as the second
// demo scene.
type HexagonRoom struct {
	*Scene
}

// NewHexagonRoom builds the hexagonal room: gray ceiling and floor, one
// red, two green and three gray walls.
func NewHexagonRoom() *HexagonRoom {
	hr := &HexagonRoom{Scene: NewScene()}

	ceiling := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.2)))
	floor := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.2)))
	walls1 := geometry.NewMesh(material.NewDiffuse(core.NewColor(0.2, 0.01, 0.01)))
	walls2 := geometry.NewMesh(material.NewDiffuse(core.NewColor(0.01, 0.2, 0.01)))
	walls3 := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.2)))

	// Ceiling corners; floor corners are the same with height flipped
	c1 := core.NewVec3(0, 5, -3)
	c2 := core.NewVec3(6, 5, 0)
	c3 := core.NewVec3(6, 5, 10)
	c4 := core.NewVec3(0, 5, 13)
	c5 := core.NewVec3(-6, 5, 10)
	c6 := core.NewVec3(-6, 5, 0)

	flip := func(v core.Vec3) core.Vec3 { return core.NewVec3(v.X, -v.Y, v.Z) }
	f1, f2, f3 := flip(c1), flip(c2), flip(c3)
	f4, f5, f6 := flip(c4), flip(c5), flip(c6)

	floor.AddQuad(f1, f4, f3, f2)
	floor.AddQuad(f1, f6, f5, f4)

	ceiling.AddQuad(c1, c2, c3, c4)
	ceiling.AddQuad(c4, c5, c6, c1)

	walls1.AddQuad(f2, f3, c3, c2)
	walls2.AddQuad(f1, f2, c2, c1)
	walls3.AddQuad(f3, f4, c4, c3)

	walls2.AddQuad(f5, f6, c6, c5)
	walls3.AddQuad(f4, f5, c5, c4)
	walls3.AddQuad(f6, f1, c1, c6)

	hr.Add(ceiling, floor, walls1, walls2, walls3)
	return hr
}

// RecommendedView looks down the long axis of the room
func (hr *HexagonRoom) RecommendedView() View {
	return View{
		Eye:    core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 10),
		Up:     core.NewVec3(0, 1, 0),
	}
}

// AddExampleObjects places the demo spheres (diffuse, specular,
// refractive) and three boxes.
func (hr *HexagonRoom) AddExampleObjects(radius float64) {
	gray := core.NewColorGray(0.5)

	leftSphere := geometry.NewSphere(
		core.NewVec3(3.0, 2.0, 10.0), radius, material.NewDiffuse(gray))
	middleSphere := geometry.NewSphere(
		core.NewVec3(-3.0, 0, 8.0), radius, material.NewSpecular(gray))
	rightSphere := geometry.NewSphere(
		core.NewVec3(1.0, -3.0, 6.0), radius, material.NewRefractive(gray, 1.52))

	box1 := geometry.NewBox(
		core.NewVec3(3.0, -5.0, 10.0),
		core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0, 1),
		2.0, 2.0, 7.0-radius,
		material.NewDiffuse(core.NewColor(0.01, 0.3, 0.8)))

	box2 := geometry.NewBox(
		core.NewVec3(-3.0, -5.0, 8.0),
		core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0, 1),
		2.0, 2.0, 5.0-radius,
		material.NewRefractive(core.NewColor(0.8, 0.4, 0.01), 1.52))

	box3 := geometry.NewBox(
		core.NewVec3(1.0, -5.0, 6.0),
		core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0, 1),
		4.0, 4.0, 2.0-radius,
		material.NewDiffuse(core.NewColor(0.5, 0.2, 0.8)))

	hr.Add(leftSphere, middleSphere, rightSphere, box1, box2, box3)
}

// AddExampleLight mounts a light just below the roof center
func (hr *HexagonRoom) AddExampleLight(emission core.Color, usePoint bool) {
	roofCenter := core.NewVec3(0, 5.0-0.001, 8.0)

	if usePoint {
		hr.Add(geometry.NewSphere(roofCenter, 0, material.NewEmissive(emission)))
		return
	}

	light := geometry.NewQuadLight(
		roofCenter,
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0, 0),
		1.0, 1.0,
		material.NewEmissive(emission))
	hr.Add(light)
}
