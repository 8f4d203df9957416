package scene

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/geometry"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// CornellBox is the classic test room: red left wall, green right wall,
// white ceiling, floor and back wall, with the open side facing the camera.
type CornellBox struct {
	*Scene
	halfLength float64
	halfWidth  float64
	halfHeight float64
}

// NewCornellBox builds the room walls for the given box dimensions
func NewCornellBox(length, width, height float64) *CornellBox {
	cb := &CornellBox{
		Scene:      NewScene(),
		halfLength: length / 2.0,
		halfWidth:  width / 2.0,
		halfHeight: height / 2.0,
	}

	leftWall := geometry.NewMesh(material.NewDiffuse(core.NewColor(0.2, 0.01, 0.01)))
	rightWall := geometry.NewMesh(material.NewDiffuse(core.NewColor(0.01, 0.2, 0.01)))
	whiteSegments := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.2)))

	// Ceiling corners; floor corners are the same with height flipped
	c1 := core.NewVec3(-cb.halfWidth, cb.halfHeight, cb.halfLength)
	c2 := core.NewVec3(cb.halfWidth, cb.halfHeight, cb.halfLength)
	c3 := core.NewVec3(cb.halfWidth, cb.halfHeight, -cb.halfLength)
	c4 := core.NewVec3(-cb.halfWidth, cb.halfHeight, -cb.halfLength)

	f1 := core.NewVec3(c1.X, -c1.Y, c1.Z)
	f2 := core.NewVec3(c2.X, -c2.Y, c2.Z)
	f3 := core.NewVec3(c3.X, -c3.Y, c3.Z)
	f4 := core.NewVec3(c4.X, -c4.Y, c4.Z)

	leftWall.AddQuad(f1, f4, c4, c1)
	rightWall.AddQuad(f2, c2, c3, f3)

	whiteSegments.AddQuad(c4, c3, c2, c1) // ceiling
	whiteSegments.AddQuad(f4, f3, c3, c4) // back wall
	whiteSegments.AddQuad(f1, f2, f3, f4) // floor

	cb.Add(leftWall, rightWall, whiteSegments)
	return cb
}

// RecommendedView places the camera at the open side looking down the box
func (cb *CornellBox) RecommendedView() View {
	return View{
		Eye:    core.NewVec3(0, 0, cb.halfLength),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
	}
}

// AddExampleObjects fills the room with the demo spheres and boxes:
// Lambertian, specular and refractive spheres plus an Oren-Nayar pair.
func (cb *CornellBox) AddExampleObjects(radius float64) {
	gray := core.NewColorGray(0.5)

	widthOffset := cb.halfWidth - radius
	depthOffset := cb.halfLength - radius

	lambertianSphere := geometry.NewSphere(
		core.NewVec3(-widthOffset, 0, -depthOffset/2.0), radius,
		material.NewDiffuse(gray))
	specularSphere := geometry.NewSphere(
		core.NewVec3(0, 2.0, -cb.halfLength+radius), radius,
		material.NewSpecular(gray))
	orenNayarSphere := geometry.NewSphere(
		core.NewVec3(widthOffset, 0, -depthOffset/2.0), radius,
		material.NewOrenNayar(gray, 0.5))
	refractionSphere := geometry.NewSphere(
		core.NewVec3(0, -cb.halfHeight+radius+1.5, -2), radius,
		material.NewRefractive(gray, 1.52))

	lambertianBox := geometry.NewBox(
		core.NewVec3(cb.halfWidth-1.5, -cb.halfHeight, -depthOffset/2.0),
		core.NewVec3(0, 1, 0), core.NewVec3(-0.5, 0, 1),
		2.0, 2.0, cb.halfHeight-radius,
		material.NewDiffuse(core.NewColor(0.01, 0.3, 0.8)))

	orenNayarBox := geometry.NewBox(
		core.NewVec3(-cb.halfWidth+1.5, -cb.halfHeight, -depthOffset/2.0),
		core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0, 1),
		2.0, 2.0, cb.halfHeight-radius,
		material.NewOrenNayar(core.NewColor(0.8, 0.4, 0.01), 0.5))

	middleBox := geometry.NewBox(
		core.NewVec3(0, -cb.halfHeight, -3),
		core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 1),
		4.0, 4.0, cb.halfHeight-radius-2.3,
		material.NewDiffuse(core.NewColor(0.5, 0.2, 0.8)))

	cb.Add(lambertianSphere, specularSphere, orenNayarSphere, refractionSphere,
		lambertianBox, orenNayarBox, middleBox)
}

// AddExampleLight mounts a light at the roof center: a quad area light, or
// a zero-radius emissive sphere acting as a point light.
func (cb *CornellBox) AddExampleLight(emission core.Color, usePoint bool) {
	roofCenter := core.NewVec3(0, cb.halfHeight-0.001, 0)

	if usePoint {
		pointLight := geometry.NewSphere(roofCenter, 0, material.NewEmissive(emission))
		cb.Add(pointLight)
		return
	}

	light := geometry.NewQuadLight(
		roofCenter,
		core.NewVec3(0, -1, 0), // facing the floor
		core.NewVec3(1, 0, 0),
		cb.halfWidth/3.0, cb.halfHeight/3.0,
		material.NewEmissive(emission))
	cb.Add(light)
}
