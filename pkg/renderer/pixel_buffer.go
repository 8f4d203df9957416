package renderer

import (
	"math"
	"sync/atomic"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// PixelBuffer accumulates linear radiance and per-pixel sample counts.
// Channel accumulation uses compare-and-swap float adds and the counters
// are atomic, so concurrent workers in random-pixel mode never lose a
// sample. Non-finite sample colors are zeroed before accumulation.
type PixelBuffer struct {
	width  int
	height int

	// 3 channel accumulators per pixel, stored as float64 bit patterns
	channels []atomic.Uint64
	samples  []atomic.Uint64
}

// NewPixelBuffer creates a zeroed buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:    width,
		height:   height,
		channels: make([]atomic.Uint64, width*height*3),
		samples:  make([]atomic.Uint64, width*height),
	}
}

// Width returns the buffer width in pixels
func (pb *PixelBuffer) Width() int { return pb.width }

// Height returns the buffer height in pixels
func (pb *PixelBuffer) Height() int { return pb.height }

// PixelIndex converts (x, y) to a pixel index
func (pb *PixelBuffer) PixelIndex(x, y int) int {
	return y*pb.width + x
}

// Accumulate adds a sample color to the pixel and increments its count
func (pb *PixelBuffer) Accumulate(pixelIndex int, color core.Color) {
	color = color.ZeroNaN()
	base := pixelIndex * 3
	atomicAddFloat(&pb.channels[base], color.R)
	atomicAddFloat(&pb.channels[base+1], color.G)
	atomicAddFloat(&pb.channels[base+2], color.B)
	pb.samples[pixelIndex].Add(1)
}

// SampleCount returns the number of samples accumulated into the pixel
func (pb *PixelBuffer) SampleCount(pixelIndex int) uint64 {
	return pb.samples[pixelIndex].Load()
}

// Mean returns the average color of the pixel; black when no samples have
// been taken.
func (pb *PixelBuffer) Mean(pixelIndex int) core.Color {
	count := pb.samples[pixelIndex].Load()
	if count == 0 {
		return core.Color{}
	}
	base := pixelIndex * 3
	inv := 1.0 / float64(count)
	return core.Color{
		R: math.Float64frombits(pb.channels[base].Load()) * inv,
		G: math.Float64frombits(pb.channels[base+1].Load()) * inv,
		B: math.Float64frombits(pb.channels[base+2].Load()) * inv,
	}
}

// TotalSamples returns the sum of all per-pixel sample counts
func (pb *PixelBuffer) TotalSamples() uint64 {
	var total uint64
	for i := range pb.samples {
		total += pb.samples[i].Load()
	}
	return total
}

// atomicAddFloat adds delta to a float64 stored as bits, retrying on
// contention.
func atomicAddFloat(target *atomic.Uint64, delta float64) {
	for {
		oldBits := target.Load()
		newBits := math.Float64bits(math.Float64frombits(oldBits) + delta)
		if target.CompareAndSwap(oldBits, newBits) {
			return
		}
	}
}
