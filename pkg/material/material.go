package material

import (
	"math"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// SurfaceKind selects the scattering branch of the integrator
type SurfaceKind int

const (
	Diffuse SurfaceKind = iota
	Specular
	Refractive
)

// DiffuseModel selects the reflectance model used by diffuse surfaces
type DiffuseModel int

const (
	Lambertian DiffuseModel = iota
	OrenNayar
)

// Surface describes how an object interacts with light. A surface with any
// emission channel above zero is a light source.
type Surface struct {
	Kind            SurfaceKind
	Diffuse         DiffuseModel
	Albedo          core.Color // reflectance per channel, in [0,1]
	Emission        core.Color // radiance, in [0,inf)
	AlbedoScale     float64    // gray reflectance used by the BRDF
	Roughness       float64    // Oren-Nayar sigma, in [0,1]
	RefractiveIndex float64
}

// NewDiffuse creates a Lambertian diffuse surface
func NewDiffuse(albedo core.Color) *Surface {
	return &Surface{
		Kind:            Diffuse,
		Diffuse:         Lambertian,
		Albedo:          albedo,
		AlbedoScale:     1.0,
		RefractiveIndex: 1.52,
	}
}

// NewOrenNayar creates a diffuse surface using the Oren-Nayar model
func NewOrenNayar(albedo core.Color, roughness float64) *Surface {
	s := NewDiffuse(albedo)
	s.Diffuse = OrenNayar
	s.Roughness = roughness
	return s
}

// NewSpecular creates a perfect mirror surface
func NewSpecular(albedo core.Color) *Surface {
	s := NewDiffuse(albedo)
	s.Kind = Specular
	return s
}

// NewRefractive creates a dielectric surface with the given index
func NewRefractive(albedo core.Color, refractiveIndex float64) *Surface {
	s := NewDiffuse(albedo)
	s.Kind = Refractive
	s.RefractiveIndex = refractiveIndex
	return s
}

// NewEmissive creates a diffuse light-emitting surface
func NewEmissive(emission core.Color) *Surface {
	s := NewDiffuse(emission)
	s.Emission = emission
	return s
}

// IsEmissive reports whether the surface emits light on any channel
func (s *Surface) IsEmissive() bool {
	return s.Emission.R > 0 || s.Emission.G > 0 || s.Emission.B > 0
}

// BRDF returns the gray diffuse reflectance for an incident/outgoing
// direction pair. Lambertian surfaces return albedoScale/pi; Oren-Nayar
// surfaces apply the standard A/B roughness terms on top of it.
func (s *Surface) BRDF(incident, outgoing, normal core.Vec3) float64 {
	switch s.Diffuse {
	case OrenNayar:
		sigma2 := s.Roughness * s.Roughness
		a := 1 - 0.5*sigma2/(sigma2+0.57)
		b := 0.45 * sigma2 / (sigma2 + 0.09)

		cosIn := incident.Dot(normal)
		cosOut := outgoing.Dot(normal)
		cosInOut := incident.Dot(outgoing)

		thetaIn := math.Acos(clampCos(cosIn))
		thetaOut := math.Acos(clampCos(cosOut))

		alpha := math.Max(thetaOut, thetaIn)
		beta := math.Min(thetaOut, thetaIn)

		on := a + b*math.Max(0, cosInOut)*math.Sin(alpha)*math.Tan(beta)
		return s.AlbedoScale / math.Pi * on
	default:
		return s.AlbedoScale / math.Pi
	}
}

// clampCos keeps acos arguments inside its domain
func clampCos(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}
