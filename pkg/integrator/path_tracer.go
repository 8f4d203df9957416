package integrator

import (
	"math"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/geometry"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
)

// IntersectionEpsilon is the offset applied along the surface normal
// before spawning secondary rays, so they cannot re-hit their own surface.
const IntersectionEpsilon = 20 * 1.19209290e-7

// Scene is the intersection surface the integrator traces against.
// Implemented by scene.Scene; declared here to keep the import direction
// one-way.
type Scene interface {
	Intersect(ray core.Ray) (geometry.Hit, bool)
	Lights() []geometry.Object
	BackgroundColor() core.Color
}

// PathTracer estimates radiance along camera rays with a single sample of
// the full light path per call. It never fails at runtime; every
// degenerate numerical branch has a defined fallback.
type PathTracer struct {
	scene           Scene
	lightSubsamples int
}

// NewPathTracer creates a path tracer over the given scene.
// lightSubsamples is the per-light sample count of the direct estimator.
func NewPathTracer(scene Scene, lightSubsamples int) *PathTracer {
	if lightSubsamples < 1 {
		lightSubsamples = 1
	}
	return &PathTracer{scene: scene, lightSubsamples: lightSubsamples}
}

// Trace returns the radiance seen along the ray. importance is the
// accumulated path throughput used by Russian roulette; top-level callers
// pass white.
func (pt *PathTracer) Trace(ray core.Ray, rng *core.UniformRandom, depth int, importance core.Color) core.Color {
	hit, ok := pt.scene.Intersect(ray)
	if !ok {
		return importance.MultiplyColor(pt.scene.BackgroundColor())
	}

	obj := hit.Object
	surface := obj.Surface()
	point := ray.At(hit.Distance)
	normal := obj.NormalAt(point, hit.ElementIndex)

	if depth == 0 || surface.IsEmissive() {
		return importance.MultiplyColor(surface.Emission)
	}

	switch surface.Kind {
	case material.Specular:
		point = point.Add(normal.Multiply(IntersectionEpsilon))
		reflected := ray.Direction.Reflect(normal)
		bounced := core.NewRay(point, reflected)
		return surface.Emission.Add(pt.Trace(bounced, rng, depth-1, importance))

	case material.Refractive:
		return pt.traceRefractive(ray, rng, depth, importance, surface, point, normal)

	default:
		return pt.traceDiffuse(ray, rng, depth, importance, surface, point, normal)
	}
}

// TraceUnlit returns the hit surface's albedo without any light transport,
// or the background color on a miss. Used for fast scene checks.
func (pt *PathTracer) TraceUnlit(ray core.Ray) core.Color {
	if hit, ok := pt.scene.Intersect(ray); ok {
		return hit.Object.Surface().Albedo
	}
	return pt.scene.BackgroundColor()
}

func (pt *PathTracer) traceDiffuse(ray core.Ray, rng *core.UniformRandom, depth int, importance core.Color, surface *material.Surface, point, normal core.Vec3) core.Color {
	point = point.Add(normal.Multiply(IntersectionEpsilon))

	directLight := pt.sampleLights(point, normal, rng)

	// Uniform hemisphere bounce: cosTheta is drawn uniformly in [0,1),
	// which distributes directions uniformly over solid angle.
	bounced, cosTheta := randomHemisphereRay(point, normal, rng)
	const pdf = 1.0 / (2.0 * math.Pi)
	brdf := surface.BRDF(ray.Direction, bounced.Direction, normal)
	importance = importance.MultiplyColor(surface.Albedo).Multiply(brdf * cosTheta / pdf)

	// Russian roulette on the strongest channel. Zero importance always
	// terminates.
	survival := math.Min(1.0, importance.MaxComponent())
	if survival <= 0 || rng.Float64() > survival {
		return importance.MultiplyColor(surface.Emission)
	}
	importance = importance.Multiply(1.0 / survival)

	indirectLight := pt.Trace(bounced, rng, depth-1, importance)

	return importance.MultiplyColor(surface.Emission.Add(directLight).Add(indirectLight))
}

// sampleLights runs the next-event estimator: for every emissive object
// with positive area, average lightSubsamples visibility-tested geometric
// terms and weight by emission/pdf with pdf = 1/area. Point lights (zero
// area) are delta lights and only contribute when hit directly.
func (pt *PathTracer) sampleLights(point, normal core.Vec3, rng *core.UniformRandom) core.Color {
	var direct core.Color

	for _, light := range pt.scene.Lights() {
		area := light.Area()
		if area <= 0 {
			continue
		}

		sum := 0.0
		for sample := 0; sample < pt.lightSubsamples; sample++ {
			lightPoint := light.SamplePoint(rng)
			toLight := lightPoint.Subtract(point)
			distanceSq := math.Max(1.0, toLight.Dot(toLight))
			direction := toLight.Normalize()

			// Shadow ray: clear path, or the first thing hit is the light
			shadowRay := core.Ray{Origin: point, Direction: direction}
			if hit, blocked := pt.scene.Intersect(shadowRay); !blocked || hit.Object == light {
				surfaceDot := math.Max(0.0, normal.Dot(direction))
				lightNormal := light.NormalAt(lightPoint, 0)
				lightDot := math.Max(0.0, lightNormal.Dot(direction.Negate()))
				sum += surfaceDot * lightDot / distanceSq
			}
		}

		// emission / pdf with pdf = 1/area
		mean := sum / float64(pt.lightSubsamples)
		direct = direct.Add(light.Surface().Emission.Multiply(area * mean))
	}

	return direct
}

func (pt *PathTracer) traceRefractive(ray core.Ray, rng *core.UniformRandom, depth int, importance core.Color, surface *material.Surface, point, normal core.Vec3) core.Color {
	incident := ray.Direction
	n1, n2 := 1.0, surface.RefractiveIndex

	// Ray aiming out of the material: flip the normal and swap media
	if incident.Dot(normal) >= 0 {
		normal = normal.Negate()
		n1, n2 = n2, n1
	}
	offset := normal.Multiply(IntersectionEpsilon)
	eta := n1 / n2

	cosI := incident.Dot(normal)
	cos2t := 1.0 - eta*eta*(1.0-cosI*cosI)
	if cos2t < 0 {
		// Total internal reflection
		reflected := core.NewRay(point.Add(offset), incident.Reflect(normal))
		return importance.MultiplyColor(
			surface.Emission.Add(pt.Trace(reflected, rng, depth-1, importance)))
	}

	transmitted := incident.Multiply(eta).
		Subtract(normal.Multiply(cosI*eta + math.Sqrt(cos2t)))

	// Schlick's approximation: R reflects, 1-R refracts
	r0 := (n2 - n1) / (n2 + n1)
	r0 *= r0
	c := 1.0 - (-cosI)
	reflectance := r0 + (1.0-r0)*c*c*c*c*c

	reflectRay := core.NewRay(point.Add(offset), incident.Reflect(normal))
	refractRay := core.NewRay(point.Subtract(offset), transmitted)

	if rng.Float64() < importance.MaxComponent() {
		// Strong ray: evaluate both sides, Fresnel-weighted
		reflected := pt.Trace(reflectRay, rng, depth-1, importance.Multiply(reflectance))
		refracted := pt.Trace(refractRay, rng, depth-1, importance.Multiply(1.0-reflectance))
		return reflected.Add(refracted)
	}

	// Weak ray: pick one side by Russian roulette
	p := 0.25 + 0.5*reflectance
	if rng.Float64() < p {
		return pt.Trace(reflectRay, rng, depth-1, importance.Multiply(reflectance/p))
	}
	return pt.Trace(refractRay, rng, depth-1, importance.Multiply((1.0-reflectance)/(1.0-p)))
}

// randomHemisphereRay samples a direction in the hemisphere around the
// normal, uniform over solid angle, and returns the drawn cosTheta.
func randomHemisphereRay(origin, normal core.Vec3, rng *core.UniformRandom) (core.Ray, float64) {
	ny := normal
	var nx core.Vec3
	if math.Abs(ny.X) > math.Abs(ny.Y) {
		nx = core.NewVec3(ny.Z, 0, -ny.X)
	} else {
		nx = core.NewVec3(0, -ny.Z, ny.Y)
	}
	nx = nx.Normalize()
	nz := ny.Cross(nx).Normalize()

	cosTheta := rng.Float64()
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	phi := 2.0 * math.Pi * rng.Float64()

	sample := core.NewVec3(sinTheta*math.Cos(phi), cosTheta, sinTheta*math.Sin(phi))
	world := nx.Multiply(sample.X).Add(ny.Multiply(sample.Y)).Add(nz.Multiply(sample.Z))

	return core.Ray{Origin: origin, Direction: world}, cosTheta
}
