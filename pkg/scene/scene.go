package scene

import (
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/geometry"
)

// SceneError reports a scene that cannot be prepared for rendering
type SceneError struct {
	Reason string
}

func (e *SceneError) Error() string {
	return "scene: " + e.Reason
}

// View is a camera placement recommendation attached to scene presets
type View struct {
	Eye    core.Vec3
	LookAt core.Vec3
	Up     core.Vec3
}

// Scene owns the renderable objects, caches the emissive ones as the light
// list and answers ray queries through an octree. All of it is read-only
// once Prepare has run.
type Scene struct {
	Objects    []geometry.Object
	Background core.Color

	lights []geometry.Object
	octree *geometry.Octree
}

// NewScene creates an empty scene with a black background
func NewScene() *Scene {
	return &Scene{octree: geometry.NewOctree(1)}
}

// Add appends objects to the scene. Must not be called after Prepare.
func (s *Scene) Add(objects ...geometry.Object) {
	s.Objects = append(s.Objects, objects...)
}

// Prepare recomputes every object's cached state, caches the light list
// and builds the octree. Preparing an empty scene is an error.
func (s *Scene) Prepare() error {
	if len(s.Objects) == 0 {
		return &SceneError{Reason: "no objects to render"}
	}

	s.lights = s.lights[:0]
	for _, obj := range s.Objects {
		obj.Prepare()
		if geometry.IsLight(obj) {
			s.lights = append(s.lights, obj)
		}
	}

	s.octree.Fill(s.Objects)
	return nil
}

// Intersect returns the nearest object hit along the ray
func (s *Scene) Intersect(ray core.Ray) (geometry.Hit, bool) {
	return s.octree.Intersect(ray)
}

// Lights returns the objects with emissive surfaces, cached by Prepare
func (s *Scene) Lights() []geometry.Object {
	return s.lights
}

// BackgroundColor returns the radiance of rays that miss the scene
func (s *Scene) BackgroundColor() core.Color {
	return s.Background
}
