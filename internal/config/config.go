// Package config loads the viewer's tunables from an optional YAML file
// layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"bookcosmos/cosmos"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of the viewer configuration.
type Config struct {
	Layout     Layout     `yaml:"layout"`
	Panel      Panel      `yaml:"panel"`
	Camera     Camera     `yaml:"camera"`
	Input      Input      `yaml:"input"`
	Transition Transition `yaml:"transition"`
	Idle       Idle       `yaml:"idle"`
	Window     Window     `yaml:"window"`
}

type Layout struct {
	SmallRadius    float64 `yaml:"small_radius"`
	LargeRadius    float64 `yaml:"large_radius"`
	Cutoff         int     `yaml:"cutoff"`
	JitterFraction float64 `yaml:"jitter_fraction"`
	Seed           int64   `yaml:"seed"`
	Shuffle        bool    `yaml:"shuffle"`
}

type Panel struct {
	Height        float64 `yaml:"height"`
	DimmedOpacity float64 `yaml:"dimmed_opacity"`
}

type Camera struct {
	FOVDeg          float64 `yaml:"fov_deg"`
	DefaultDistance float64 `yaml:"default_distance"`
	Near            float64 `yaml:"near"`
	Far             float64 `yaml:"far"`
	Damping         float64 `yaml:"damping"`
}

type Input struct {
	DebounceMS int `yaml:"debounce_ms"`
}

type Transition struct {
	DurationMS int    `yaml:"duration_ms"`
	Easing     string `yaml:"easing"`
}

type Idle struct {
	SpeedRadPerSec float64 `yaml:"speed_rad_per_sec"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
	Hz     int `yaml:"hz"`
}

// Default returns the built-in configuration.
func Default() Config {
	core := cosmos.DefaultConfig()
	return Config{
		Layout: Layout{
			SmallRadius:    core.Layout.SmallRadius,
			LargeRadius:    core.Layout.LargeRadius,
			Cutoff:         core.Layout.Cutoff,
			JitterFraction: core.Layout.JitterFraction,
		},
		Panel: Panel{
			Height:        core.PanelHeight,
			DimmedOpacity: core.DimmedOpacity,
		},
		Camera: Camera{
			FOVDeg:          75,
			DefaultDistance: core.DefaultDistance,
			Near:            0.1,
			Far:             200,
			Damping:         0.85,
		},
		Input:      Input{DebounceMS: int(core.DebounceGap / time.Millisecond)},
		Transition: Transition{DurationMS: int(core.TransitionDuration / time.Millisecond), Easing: "cubic-in-out"},
		Idle:       Idle{SpeedRadPerSec: core.IdleSpeed},
		Window:     Window{Width: 480, Height: 320, Scale: 2, Hz: 60},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the core cannot use.
func (c Config) Validate() error {
	var errs []error
	if !(c.Layout.SmallRadius > 0) || !(c.Layout.LargeRadius > 0) {
		errs = append(errs, errors.New("layout radii must be positive"))
	}
	if c.Layout.Cutoff < 0 {
		errs = append(errs, errors.New("layout.cutoff must not be negative"))
	}
	if c.Layout.JitterFraction < 0 || c.Layout.JitterFraction >= 1 {
		errs = append(errs, errors.New("layout.jitter_fraction must be in [0,1)"))
	}
	if !(c.Panel.Height > 0) {
		errs = append(errs, errors.New("panel.height must be positive"))
	}
	if c.Panel.DimmedOpacity < 0 || c.Panel.DimmedOpacity > 1 {
		errs = append(errs, errors.New("panel.dimmed_opacity must be in [0,1]"))
	}
	if !(c.Camera.FOVDeg > 0) || c.Camera.FOVDeg >= 180 {
		errs = append(errs, errors.New("camera.fov_deg must be in (0,180)"))
	}
	if !(c.Camera.DefaultDistance > 0) {
		errs = append(errs, errors.New("camera.default_distance must be positive"))
	}
	if !(c.Camera.Near > 0) || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, errors.New("camera near/far must satisfy 0 < near < far"))
	}
	if c.Camera.Damping < 0 || c.Camera.Damping >= 1 {
		errs = append(errs, errors.New("camera.damping must be in [0,1)"))
	}
	if c.Input.DebounceMS < 0 {
		errs = append(errs, errors.New("input.debounce_ms must not be negative"))
	}
	if c.Transition.DurationMS <= 0 {
		errs = append(errs, errors.New("transition.duration_ms must be positive"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	return errors.Join(errs...)
}

// FOVRad is the vertical field of view in radians.
func (c Config) FOVRad() float64 { return c.Camera.FOVDeg * math.Pi / 180 }

// Core maps the file configuration onto the cosmos tunables.
func (c Config) Core() cosmos.Config {
	core := cosmos.DefaultConfig()
	core.Layout = cosmos.LayoutConfig{
		SmallRadius:    c.Layout.SmallRadius,
		LargeRadius:    c.Layout.LargeRadius,
		Cutoff:         c.Layout.Cutoff,
		JitterFraction: c.Layout.JitterFraction,
	}
	core.PanelHeight = c.Panel.Height
	core.DimmedOpacity = c.Panel.DimmedOpacity
	core.DefaultDistance = c.Camera.DefaultDistance
	core.DebounceGap = time.Duration(c.Input.DebounceMS) * time.Millisecond
	core.TransitionDuration = time.Duration(c.Transition.DurationMS) * time.Millisecond
	core.Easing = cosmos.EasingByName(c.Transition.Easing)
	core.IdleSpeed = c.Idle.SpeedRadPerSec
	core.Seed = c.Layout.Seed
	return core
}
