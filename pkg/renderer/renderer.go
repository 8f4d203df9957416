package renderer

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// Mode selects how workers pick pixels
type Mode int

const (
	// ModeSequential splits rows into one band per worker; each band is
	// walked exactly once. Deterministic given per-worker seeds.
	ModeSequential Mode = iota
	// ModeRandomPixel progressively refines: every worker keeps drawing
	// uniformly random pixels until the quit flag is set.
	ModeRandomPixel
)

// DefaultPublishInterval is the frame publication cadence
const DefaultPublishInterval = 100 * time.Millisecond

// Tracer estimates radiance for camera rays. Implemented by
// integrator.PathTracer.
type Tracer interface {
	Trace(ray core.Ray, rng *core.UniformRandom, depth int, importance core.Color) core.Color
	TraceUnlit(ray core.Ray) core.Color
}

// Config is the immutable per-render configuration
type Config struct {
	Mode            Mode
	Threads         int    // worker count, 0 = logical CPUs
	MaxDepth        int    // integrator recursion cap, >= 1
	RaysPerSample   int    // camera rays per pixel sample
	Seed            uint64 // master seed; used when HasSeed is set
	HasSeed         bool
	Unlit           bool // trace albedo only, centered sub-pixel
	PublishInterval time.Duration
	ToneMapper      ToneMapper
}

// Stats summarizes a finished or in-flight render
type Stats struct {
	TotalSamples uint64
	Elapsed      time.Duration
}

// Renderer drives the tracer over the image with parallel workers and
// publishes tone-mapped frames at a fixed cadence.
type Renderer struct {
	camera *Camera
	tracer Tracer
	config Config
	logger core.Logger

	pixels  *PixelBuffer
	display []byte

	quit    atomic.Bool
	started time.Time
}

// NewRenderer creates a renderer. The camera defines the image size.
func NewRenderer(camera *Camera, tracer Tracer, config Config, logger core.Logger) *Renderer {
	if config.PublishInterval <= 0 {
		config.PublishInterval = DefaultPublishInterval
	}
	if config.RaysPerSample < 1 {
		config.RaysPerSample = 1
	}
	if config.MaxDepth < 1 {
		config.MaxDepth = 1
	}
	if logger == nil {
		logger = core.NewStdoutLogger()
	}

	width, height := camera.Width(), camera.Height()
	return &Renderer{
		camera:  camera,
		tracer:  tracer,
		config:  config,
		logger:  logger,
		pixels:  NewPixelBuffer(width, height),
		display: make([]byte, width*height*4),
	}
}

// Stop requests an orderly shutdown; workers exit at their next sample
// boundary.
func (r *Renderer) Stop() {
	r.quit.Store(true)
}

// Pixels exposes the accumulation buffer, mainly for tests
func (r *Renderer) Pixels() *PixelBuffer {
	return r.pixels
}

// Stats returns the current render statistics
func (r *Renderer) Stats() Stats {
	return Stats{
		TotalSamples: r.pixels.TotalSamples(),
		Elapsed:      time.Since(r.started),
	}
}

// workerCount resolves the configured thread count
func (r *Renderer) workerCount() int {
	if r.config.Threads > 0 {
		return r.config.Threads
	}
	return runtime.NumCPU()
}

// workerRNGs builds one generator per worker. With a master seed the
// states are split deterministically; otherwise each pulls fresh entropy.
// Seeds always differ across workers.
func (r *Renderer) workerRNGs(count int) []*core.UniformRandom {
	rngs := make([]*core.UniformRandom, count)
	if r.config.HasSeed {
		state := r.config.Seed
		for i := range rngs {
			rngs[i] = core.NewUniformRandomSeeded(core.SplitMix64(&state))
		}
	} else {
		for i := range rngs {
			rngs[i] = core.NewUniformRandom()
		}
	}
	return rngs
}

// Render runs the full frame loop: spawn workers, publish frames every
// PublishInterval, report progress, join on completion, cancellation or
// quit. A failing pixel sink aborts the render and is returned as an
// IoError.
func (r *Renderer) Render(ctx context.Context, sink PixelSink, progress ProgressSink) error {
	if progress == nil {
		progress = NopProgress{}
	}

	workers := r.workerCount()
	rngs := r.workerRNGs(workers)
	width, height := r.pixels.Width(), r.pixels.Height()

	r.quit.Store(false)
	r.started = time.Now()
	r.logger.Printf("Rendering %dx%d with %d workers\n", width, height, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int, rng *core.UniformRandom) {
			defer wg.Done()
			switch r.config.Mode {
			case ModeRandomPixel:
				r.traceRandomPixels(rng)
			default:
				yBegin := height * id / workers
				yEnd := height * (id + 1) / workers
				r.traceRows(yBegin, yEnd, rng)
			}
		}(i, rngs[i])
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(r.config.PublishInterval)
	defer ticker.Stop()

	lastPublish := r.started
	var renderErr error
	ctxDone := ctx.Done()

loop:
	for {
		select {
		case <-ctxDone:
			r.quit.Store(true)
			ctxDone = nil
		case <-done:
			break loop
		case now := <-ticker.C:
			fps := 1.0 / now.Sub(lastPublish).Seconds()
			lastPublish = now
			if err := sink.Publish(width, height, r.display); err != nil {
				renderErr = &IoError{Cause: err}
				r.quit.Store(true)
			}
			progress.Report(fps, now.Sub(r.started).Seconds())
		}
	}

	// Workers have joined; publish the final frame unless the sink
	// already failed.
	if renderErr == nil {
		if err := sink.Publish(width, height, r.display); err != nil {
			renderErr = &IoError{Cause: err}
		}
		progress.Report(0, time.Since(r.started).Seconds())
	}

	return renderErr
}

// traceRows walks one row band exactly once (sequential mode)
func (r *Renderer) traceRows(yBegin, yEnd int, rng *core.UniformRandom) {
	width := r.pixels.Width()
	for y := yBegin; y < yEnd; y++ {
		for x := 0; x < width; x++ {
			if r.quit.Load() {
				return
			}
			r.samplePixel(x, y, rng)
		}
	}
}

// traceRandomPixels draws uniform pixels until quit (random-pixel mode)
func (r *Renderer) traceRandomPixels(rng *core.UniformRandom) {
	width := r.pixels.Width()
	height := r.pixels.Height()
	for !r.quit.Load() {
		x := int(rng.Float64Range(0, float64(width)))
		y := int(rng.Float64Range(0, float64(height)))
		r.samplePixel(x, y, rng)
	}
}

// samplePixel traces the configured number of rays through one pixel,
// accumulates them and refreshes the pixel's display bytes.
func (r *Renderer) samplePixel(x, y int, rng *core.UniformRandom) {
	pixelIndex := r.pixels.PixelIndex(x, y)

	for ray := 0; ray < r.config.RaysPerSample; ray++ {
		var color core.Color
		if r.config.Unlit {
			cameraRay := r.camera.PixelRay(float64(x)+0.5, float64(y)+0.5)
			color = r.tracer.TraceUnlit(cameraRay)
		} else {
			sx := rng.Float64()
			sy := rng.Float64()
			cameraRay := r.camera.PixelRay(float64(x)+sx, float64(y)+sy)
			color = r.tracer.Trace(cameraRay, rng, r.config.MaxDepth, core.NewColorGray(1.0))
		}
		r.pixels.Accumulate(pixelIndex, color)
	}

	// Torn display pixels are tolerated; the accumulator is the source of
	// truth.
	r.config.ToneMapper.MapToBytes(r.pixels.Mean(pixelIndex), r.display[pixelIndex*4:pixelIndex*4+4])
}
