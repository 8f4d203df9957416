package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// ConfigError reports invalid startup configuration. It is returned before
// any worker starts.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

// Modes
const (
	ModeSequential  = "sequential"
	ModeRandomPixel = "random_pixel"
)

// Tone mappers
const (
	ToneMapReinhard = "reinhard"
	ToneMapExposure = "exposure"
)

// Scene presets
const (
	SceneCornellBox = "cornell_box"
	SceneHexagon    = "hexagon"
)

// Config holds every startup setting. Nothing in it is mutable during a
// render.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	FovYDeg         float64 `yaml:"fov_y_deg"`
	MaxDepth        int     `yaml:"max_depth"`
	RaysPerSample   int     `yaml:"rays_per_sample"`
	LightSubsamples int     `yaml:"light_subsamples"`

	Mode    string `yaml:"mode"`
	Threads int    `yaml:"threads"` // 0 = auto
	Seed    uint64 `yaml:"seed"`
	HasSeed bool   `yaml:"use_seed"`
	Unlit   bool   `yaml:"unlit"`

	ToneMapper string     `yaml:"tone_mapper"`
	Gamma      float64    `yaml:"gamma"`
	Exposure   float64    `yaml:"exposure"`
	Background [3]float64 `yaml:"background"`

	ScenePreset   string  `yaml:"scene_preset"`
	CornellLength float64 `yaml:"cornell_length"`
	CornellWidth  float64 `yaml:"cornell_width"`
	CornellHeight float64 `yaml:"cornell_height"`

	LightEmission float64 `yaml:"light_emission"`
	UsePointLight bool    `yaml:"use_point_light"`
}

// Default mirrors the original render constants
func Default() Config {
	return Config{
		Width:           640,
		Height:          480,
		FovYDeg:         90.0,
		MaxDepth:        5,
		RaysPerSample:   1,
		LightSubsamples: 4,
		Mode:            ModeRandomPixel,
		ToneMapper:      ToneMapReinhard,
		Gamma:           2.2,
		Exposure:        1.0,
		ScenePreset:     SceneHexagon,
		CornellLength:   10.0,
		CornellWidth:    10.0,
		CornellHeight:   10.0,
		LightEmission:   1.0,
	}
}

// BackgroundColor returns the background as a Color
func (c Config) BackgroundColor() core.Color {
	return core.NewColor(c.Background[0], c.Background[1], c.Background[2])
}

// Validate checks the configuration and returns a ConfigError describing
// the first problem found.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("image dimensions must be positive, got %dx%d", c.Width, c.Height)}
	}
	if c.FovYDeg <= 0 || c.FovYDeg >= 180 {
		return &ConfigError{Reason: fmt.Sprintf("fov_y_deg must be in (0, 180), got %g", c.FovYDeg)}
	}
	if c.MaxDepth < 1 {
		return &ConfigError{Reason: fmt.Sprintf("max_depth must be at least 1, got %d", c.MaxDepth)}
	}
	if c.RaysPerSample < 1 {
		return &ConfigError{Reason: fmt.Sprintf("rays_per_sample must be at least 1, got %d", c.RaysPerSample)}
	}
	if c.LightSubsamples < 1 {
		return &ConfigError{Reason: fmt.Sprintf("light_subsamples must be at least 1, got %d", c.LightSubsamples)}
	}
	if c.Threads < 0 {
		return &ConfigError{Reason: fmt.Sprintf("threads must not be negative, got %d", c.Threads)}
	}
	if c.Mode != ModeSequential && c.Mode != ModeRandomPixel {
		return &ConfigError{Reason: fmt.Sprintf("unknown mode %q", c.Mode)}
	}
	if c.ToneMapper != ToneMapReinhard && c.ToneMapper != ToneMapExposure {
		return &ConfigError{Reason: fmt.Sprintf("unknown tone_mapper %q", c.ToneMapper)}
	}
	if c.Gamma <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("gamma must be positive, got %g", c.Gamma)}
	}
	if c.ScenePreset != SceneCornellBox && c.ScenePreset != SceneHexagon {
		return &ConfigError{Reason: fmt.Sprintf("unknown scene_preset %q", c.ScenePreset)}
	}
	if c.ScenePreset == SceneCornellBox &&
		(c.CornellLength <= 0 || c.CornellWidth <= 0 || c.CornellHeight <= 0) {
		return &ConfigError{Reason: "cornell box dimensions must be positive"}
	}
	return nil
}

// Load reads a YAML config file over the defaults
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}
