package renderer

import (
	"math"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// ToneMapKind selects the HDR-to-display compression curve
type ToneMapKind int

const (
	// ToneMapReinhard applies C/(C+1) before gamma
	ToneMapReinhard ToneMapKind = iota
	// ToneMapExposure applies 1-exp(-C*exposure) before gamma
	ToneMapExposure
	// ToneMapNone applies gamma only
	ToneMapNone
)

// ToneMapper converts linear radiance to display-ready 8-bit channels
type ToneMapper struct {
	Kind     ToneMapKind
	Gamma    float64
	Exposure float64
}

// NewToneMapper creates a tone mapper; gamma defaults to 2.2 and exposure
// to 1 when non-positive values are given.
func NewToneMapper(kind ToneMapKind, gamma, exposure float64) ToneMapper {
	if gamma <= 0 {
		gamma = 2.2
	}
	if exposure <= 0 {
		exposure = 1.0
	}
	return ToneMapper{Kind: kind, Gamma: gamma, Exposure: exposure}
}

// Map compresses a linear color into [0,1] per channel
func (tm ToneMapper) Map(c core.Color) core.Color {
	switch tm.Kind {
	case ToneMapReinhard:
		c = core.Color{R: c.R / (c.R + 1.0), G: c.G / (c.G + 1.0), B: c.B / (c.B + 1.0)}
	case ToneMapExposure:
		c = core.Color{
			R: 1.0 - math.Exp(-c.R*tm.Exposure),
			G: 1.0 - math.Exp(-c.G*tm.Exposure),
			B: 1.0 - math.Exp(-c.B*tm.Exposure),
		}
	}

	invGamma := 1.0 / tm.Gamma
	return core.Color{
		R: math.Pow(math.Max(0, c.R), invGamma),
		G: math.Pow(math.Max(0, c.G), invGamma),
		B: math.Pow(math.Max(0, c.B), invGamma),
	}
}

// MapToBytes writes the tone-mapped color as RGBA8 into dst[0:4]
func (tm ToneMapper) MapToBytes(c core.Color, dst []byte) {
	mapped := tm.Map(c)
	dst[0] = toByte(mapped.R)
	dst[1] = toByte(mapped.G)
	dst[2] = toByte(mapped.B)
	dst[3] = 255
}

func toByte(v float64) byte {
	scaled := math.Round(v * 255.0)
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return byte(scaled)
}
