package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/fogleman/gg"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/config"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/geometry"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/integrator"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/loaders"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/material"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/renderer"
	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/scene"
)

// pngSink keeps the latest published frame and writes it as a PNG when the
// render finishes.
type pngSink struct {
	path  string
	frame *image.RGBA
}

func (s *pngSink) Publish(width, height int, rgba []byte) error {
	if s.frame == nil {
		s.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	copy(s.frame.Pix, rgba)
	return nil
}

func (s *pngSink) Save() error {
	if s.frame == nil {
		return fmt.Errorf("no frame was published")
	}
	return gg.NewContextForRGBA(s.frame).SavePNG(s.path)
}

// stdoutProgress reports render progress the way the original showed it in
// the window title.
type stdoutProgress struct {
	logger core.Logger
}

func (p *stdoutProgress) Report(fps, elapsedSeconds float64) {
	p.logger.Printf("FPS: %.1f - Time: %.1fs\n", fps, elapsedSeconds)
}

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override it)")
	scenePreset := flag.String("scene", "", "Scene preset: 'cornell_box' or 'hexagon'")
	width := flag.Int("width", 0, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels")
	mode := flag.String("mode", "", "Scheduling mode: 'sequential' or 'random_pixel'")
	maxDepth := flag.Int("depth", 0, "Maximum trace depth")
	seed := flag.Uint64("seed", 0, "Master seed (0 keeps entropy seeding)")
	threads := flag.Int("threads", -1, "Worker count, 0 = logical CPUs")
	duration := flag.Duration("time", 10*time.Second, "Render duration in random_pixel mode")
	unlit := flag.Bool("unlit", false, "Trace albedo only, no light transport")
	meshPath := flag.String("mesh", "", "Optional OBJ file added to the scene as a diffuse mesh")
	output := flag.String("out", "render.png", "Output PNG path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override file values
	if *scenePreset != "" {
		cfg.ScenePreset = *scenePreset
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *seed != 0 {
		cfg.Seed = *seed
		cfg.HasSeed = true
	}
	if *threads >= 0 {
		cfg.Threads = *threads
	}
	if *unlit {
		cfg.Unlit = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *duration, *meshPath, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, duration time.Duration, meshPath, output string) error {
	logger := core.NewStdoutLogger()

	sc, view, err := buildScene(cfg, meshPath)
	if err != nil {
		return err
	}

	camera := renderer.NewCamera(cfg.Width, cfg.Height, cfg.FovYDeg)
	camera.SetView(view.Eye, view.LookAt, view.Up)

	tracer := integrator.NewPathTracer(sc, cfg.LightSubsamples)

	toneKind := renderer.ToneMapReinhard
	if cfg.ToneMapper == config.ToneMapExposure {
		toneKind = renderer.ToneMapExposure
	}

	renderMode := renderer.ModeSequential
	if cfg.Mode == config.ModeRandomPixel {
		renderMode = renderer.ModeRandomPixel
	}

	r := renderer.NewRenderer(camera, tracer, renderer.Config{
		Mode:          renderMode,
		Threads:       cfg.Threads,
		MaxDepth:      cfg.MaxDepth,
		RaysPerSample: cfg.RaysPerSample,
		Seed:          cfg.Seed,
		HasSeed:       cfg.HasSeed,
		Unlit:         cfg.Unlit,
		ToneMapper:    renderer.NewToneMapper(toneKind, cfg.Gamma, cfg.Exposure),
	}, logger)

	ctx := context.Background()
	if renderMode == renderer.ModeRandomPixel {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	sink := &pngSink{path: output}
	progress := &stdoutProgress{logger: logger}

	logger.Printf("Rendering %s at %dx%d (%s mode)...\n",
		cfg.ScenePreset, cfg.Width, cfg.Height, cfg.Mode)

	start := time.Now()
	if err := r.Render(ctx, sink, progress); err != nil {
		return err
	}
	stats := r.Stats()
	logger.Printf("Render completed in %v (%d samples)\n",
		time.Since(start).Round(time.Millisecond), stats.TotalSamples)

	if err := sink.Save(); err != nil {
		return err
	}
	logger.Printf("Saved %s\n", output)
	return nil
}

// buildScene constructs the configured preset with its example objects and
// light, prepared for rendering.
func buildScene(cfg config.Config, meshPath string) (*scene.Scene, scene.View, error) {
	emission := core.NewColorGray(cfg.LightEmission)

	var sc *scene.Scene
	var view scene.View
	switch cfg.ScenePreset {
	case config.SceneCornellBox:
		box := scene.NewCornellBox(cfg.CornellLength, cfg.CornellWidth, cfg.CornellHeight)
		box.AddExampleObjects(1.5)
		box.AddExampleLight(emission, cfg.UsePointLight)
		sc, view = box.Scene, box.RecommendedView()
	default:
		room := scene.NewHexagonRoom()
		room.AddExampleObjects(1.5)
		room.AddExampleLight(emission, cfg.UsePointLight)
		sc, view = room.Scene, room.RecommendedView()
	}

	if meshPath != "" {
		triangles, err := loaders.LoadOBJ(meshPath)
		if err != nil {
			return nil, scene.View{}, &renderer.IoError{Cause: err}
		}
		mesh := geometry.NewMesh(material.NewDiffuse(core.NewColorGray(0.5)))
		mesh.SetTriangles(triangles)
		sc.Add(mesh)
	}

	sc.Background = cfg.BackgroundColor()
	if err := sc.Prepare(); err != nil {
		return nil, scene.View{}, err
	}
	return sc, view, nil
}
