package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// Camera is a pinhole camera mapping sub-pixel image coordinates to world
// rays. The view matrix is the inverse of a right-handed look-at
// transform.
type Camera struct {
	position core.Vec3
	view     mgl64.Mat4
	fovScale float64

	width  int
	height int
	deltaX float64
	deltaY float64
	aspect float64
}

// NewCamera creates a camera for the given image size and vertical FOV in
// degrees, looking down -Z until SetView is called.
func NewCamera(width, height int, fovYDegrees float64) *Camera {
	c := &Camera{
		view:     mgl64.Ident4(),
		fovScale: math.Tan(fovYDegrees * 0.5 / 180.0 * math.Pi),
		width:    width,
		height:   height,
		deltaX:   2.0 / float64(width),
		deltaY:   2.0 / float64(height),
		aspect:   float64(width) / float64(height),
	}
	return c
}

// SetView points the camera from eye toward target
func (c *Camera) SetView(eye, target, up core.Vec3) {
	c.position = eye
	lookAt := mgl64.LookAtV(
		mgl64.Vec3{eye.X, eye.Y, eye.Z},
		mgl64.Vec3{target.X, target.Y, target.Z},
		mgl64.Vec3{up.X, up.Y, up.Z},
	)
	c.view = lookAt.Inv()
}

// Position returns the camera eye point
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// PixelRay returns the world-space ray through image coordinates (x, y).
// x and y may be sub-pixel floats; (0,0) is the top-left corner.
func (c *Camera) PixelRay(x, y float64) core.Ray {
	direction := core.Vec3{
		X: -1.0 + x*c.deltaX,
		Y: 1.0 - y*c.deltaY,
		Z: -1.0,
	}

	// Match field of view and non-square output
	direction.X *= c.fovScale * c.aspect
	direction.Y *= c.fovScale

	// Rotate into the camera's world orientation
	rotated := c.view.Mul4x1(mgl64.Vec4{direction.X, direction.Y, direction.Z, 0})

	return core.NewRay(c.position, core.NewVec3(rotated.X(), rotated.Y(), rotated.Z()))
}
