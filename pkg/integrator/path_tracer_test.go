package integrator

import (
	"math"
	"testing"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/geometry"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/scene"
)

func preparedScene(t *testing.T, background core.Color, objects ...geometry.Object) *scene.Scene {
	t.Helper()
	s := scene.NewScene()
	s.Background = background
	s.Add(objects...)
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	return s
}

func white() core.Color { return core.NewColorGray(1.0) }

func TestTrace_MissReturnsBackground(t *testing.T) {
	background := core.NewColor(0.2, 0.3, 0.4)
	s := preparedScene(t, background,
		geometry.NewSphere(core.NewVec3(0, 0, 100), 1, material.NewDiffuse(core.NewColorGray(0.5))))

	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(1)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := pt.Trace(ray, rng, 5, white())
	if got != background {
		t.Errorf("Expected background %v, got %v", background, got)
	}

	// Importance scales the miss color
	got = pt.Trace(ray, rng, 5, core.NewColorGray(0.5))
	if got != background.Multiply(0.5) {
		t.Errorf("Expected scaled background, got %v", got)
	}
}

func TestTrace_DepthZeroReturnsEmissionOnly(t *testing.T) {
	light := geometry.NewQuadLight(
		core.NewVec3(0, 0, -5),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0),
		4, 4,
		material.NewEmissive(core.NewColor(3, 2, 1)))
	diffuse := geometry.NewSphere(core.NewVec3(10, 0, -5), 1, material.NewDiffuse(core.NewColorGray(0.5)))
	s := preparedScene(t, core.Color{}, light, diffuse)

	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(1)

	// Light hit at depth 0: emission
	toLight := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := pt.Trace(toLight, rng, 0, white()); got != core.NewColor(3, 2, 1) {
		t.Errorf("Expected light emission, got %v", got)
	}

	// Non-emissive hit at depth 0: black
	toSphere := core.NewRay(core.NewVec3(10, 0, 0), core.NewVec3(0, 0, -1))
	if got := pt.Trace(toSphere, rng, 0, white()); !got.IsBlack() {
		t.Errorf("Expected black at depth 0 on non-light, got %v", got)
	}
}

func TestTrace_LightHitReturnsEmissionAtAnyDepth(t *testing.T) {
	light := geometry.NewQuadLight(
		core.NewVec3(0, 0, -5),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0),
		4, 4,
		material.NewEmissive(core.NewColorGray(7)))
	s := preparedScene(t, core.Color{}, light)

	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(1)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := pt.Trace(ray, rng, 10, white()); got != core.NewColorGray(7) {
		t.Errorf("Expected emission, got %v", got)
	}
}

func TestTrace_ZeroImportanceTerminates(t *testing.T) {
	s := preparedScene(t, core.NewColorGray(1),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewColorGray(0.5))))

	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(1)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := pt.Trace(ray, rng, 50, core.Color{})
	if !got.IsBlack() {
		t.Errorf("Zero importance must terminate black, got %v", got)
	}
}

func TestTrace_MirrorReflectsEmissiveWalls(t *testing.T) {
	// A perfect mirror sphere between a red and a green emissive wall.
	// Looking at the sphere from the red side, the head-on reflection runs
	// straight back to the red wall.
	mirror := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewSpecular(core.NewColorGray(0.9)))

	redWall := geometry.NewMesh(material.NewEmissive(core.NewColor(10, 0, 0)))
	redWall.AddQuad(
		core.NewVec3(-10, -20, -20), core.NewVec3(-10, -20, 20),
		core.NewVec3(-10, 20, 20), core.NewVec3(-10, 20, -20))

	greenWall := geometry.NewMesh(material.NewEmissive(core.NewColor(0, 10, 0)))
	greenWall.AddQuad(
		core.NewVec3(10, -20, -20), core.NewVec3(10, 20, -20),
		core.NewVec3(10, 20, 20), core.NewVec3(10, -20, 20))

	s := preparedScene(t, core.Color{}, mirror, redWall, greenWall)
	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(42)

	// Camera on the red (left) side looking at the sphere center
	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))
	got := pt.Trace(ray, rng, 5, white())

	if got.R <= 0 {
		t.Errorf("Expected red reflection, got %v", got)
	}
	if got.G != 0 {
		t.Errorf("Expected no green in head-on reflection, got %v", got)
	}
}

func TestTrace_RefractiveIndexOneIsTransparent(t *testing.T) {
	// With n1 == n2 Schlick reflectance is zero head-on and the refracted
	// direction equals the incident one, so the glass sphere is invisible.
	glass := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewRefractive(core.NewColorGray(1), 1.0))

	wall := geometry.NewMesh(material.NewEmissive(core.NewColor(2, 4, 8)))
	wall.AddQuad(
		core.NewVec3(-10, -10, -10), core.NewVec3(10, -10, -10),
		core.NewVec3(10, 10, -10), core.NewVec3(-10, 10, -10))

	s := preparedScene(t, core.Color{}, glass, wall)
	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(9)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := pt.Trace(ray, rng, 8, white())

	expected := core.NewColor(2, 4, 8)
	if math.Abs(got.R-expected.R) > 1e-6 ||
		math.Abs(got.G-expected.G) > 1e-6 ||
		math.Abs(got.B-expected.B) > 1e-6 {
		t.Errorf("Expected wall emission %v through index-1 glass, got %v", expected, got)
	}
}

func TestTrace_DielectricWeightsSumToOne(t *testing.T) {
	// Every path through the glass sphere ends on the same emissive
	// surround, so reflect and refract weights summing to one makes the
	// estimator's mean equal the surround emission. The strong-ray branch
	// contributes R*E + (1-R)*E exactly; the weak branch is unbiased by
	// its roulette compensation.
	glass := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewRefractive(core.NewColorGray(1), 1.52))
	surround := geometry.NewSphere(core.NewVec3(0, 0, -3), 50, material.NewEmissive(core.NewColorGray(5)))

	s := preparedScene(t, core.Color{}, glass, surround)
	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(77)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var mean core.Color
	const samples = 500
	for i := 0; i < samples; i++ {
		mean = mean.Add(pt.Trace(ray, rng, 16, white()))
	}
	mean = mean.Multiply(1.0 / samples)

	// Depth-truncated multi-bounce internal reflections lose a sliver of
	// energy, so the mean sits just below the emission value.
	if math.Abs(mean.R-5) > 0.2 {
		t.Errorf("Expected mean near 5, got %v", mean)
	}
}

func TestTrace_DirectLightIlluminatesFloor(t *testing.T) {
	// Diffuse floor lit by an overhead quad light: the first bounce must
	// pick up direct light.
	floor := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.8)))
	floor.AddQuad(
		core.NewVec3(-10, 0, -10), core.NewVec3(-10, 0, 10),
		core.NewVec3(10, 0, 10), core.NewVec3(10, 0, -10))

	light := geometry.NewQuadLight(
		core.NewVec3(0, 5, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0, 0),
		1, 1,
		material.NewEmissive(core.NewColorGray(100)))

	s := preparedScene(t, core.Color{}, floor, light)
	pt := NewPathTracer(s, 32)
	rng := core.NewUniformRandomSeeded(42)

	ray := core.NewRay(core.NewVec3(0, 3, 3), core.NewVec3(0, -1, -1))

	// Average a few paths; every one sees the same direct term, so the
	// mean is comfortably positive.
	var mean core.Color
	const samples = 64
	for i := 0; i < samples; i++ {
		mean = mean.Add(pt.Trace(ray, rng, 3, white()))
	}
	mean = mean.Multiply(1.0 / samples)

	if mean.R <= 0.001 {
		t.Errorf("Expected lit floor, got %v", mean)
	}
	if mean.R > 1000 {
		t.Errorf("Suspiciously bright result %v", mean)
	}
}

func TestTrace_PointLightSkippedByAreaEstimator(t *testing.T) {
	// A zero-radius light cannot be area-sampled; the floor then receives
	// no direct light and paths terminate without blowing up.
	floor := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.8)))
	floor.AddQuad(
		core.NewVec3(-10, 0, -10), core.NewVec3(-10, 0, 10),
		core.NewVec3(10, 0, 10), core.NewVec3(10, 0, -10))
	point := geometry.NewSphere(core.NewVec3(0, 5, 0), 0, material.NewEmissive(core.NewColorGray(100)))

	s := preparedScene(t, core.Color{}, floor, point)
	pt := NewPathTracer(s, 8)
	rng := core.NewUniformRandomSeeded(13)

	ray := core.NewRay(core.NewVec3(0, 3, 3), core.NewVec3(0, -1, -1))
	got := pt.Trace(ray, rng, 3, white())
	if math.IsNaN(got.R) || math.IsInf(got.R, 0) {
		t.Errorf("Expected finite result, got %v", got)
	}
}

func TestTrace_TotalInternalReflectionIsFinite(t *testing.T) {
	glass := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewRefractive(core.NewColorGray(1), 1.52))
	s := preparedScene(t, core.Color{}, glass)
	pt := NewPathTracer(s, 4)
	rng := core.NewUniformRandomSeeded(5)

	// Grazing ray from inside the sphere: sin(theta) * 1.52 > 1 forces TIR
	ray := core.NewRay(core.NewVec3(0.9, 0, 0), core.NewVec3(0, 1, 0))
	got := pt.Trace(ray, rng, 4, white())
	if math.IsNaN(got.R) || math.IsInf(got.R, 0) {
		t.Errorf("TIR produced a non-finite color: %v", got)
	}
}

func TestTraceUnlit(t *testing.T) {
	background := core.NewColor(0.1, 0.2, 0.3)
	albedo := core.NewColor(0.6, 0.5, 0.4)
	s := preparedScene(t, background,
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDiffuse(albedo)))

	pt := NewPathTracer(s, 4)

	hitRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := pt.TraceUnlit(hitRay); got != albedo {
		t.Errorf("Expected albedo %v, got %v", albedo, got)
	}

	missRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if got := pt.TraceUnlit(missRay); got != background {
		t.Errorf("Expected background %v, got %v", background, got)
	}
}
