// Package config loads the viewer settings from an optional YAML file.
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leterax/go-flycam/pkg/input"
	"github.com/leterax/go-flycam/pkg/render"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
	Lights LightsConfig `yaml:"lights"`

	// KeyBindings overrides the default layout per action; keys are names
	// understood by input.ParseKey. An empty list leaves the action unbound.
	KeyBindings map[string][]string `yaml:"bindings"`
}

type WindowConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Title         string `yaml:"title"`
	VSync         bool   `yaml:"vsync"`
	Debug         bool   `yaml:"debug"`
	StartCaptured bool   `yaml:"start_captured"`
}

type CameraConfig struct {
	FOV         float32    `yaml:"fov"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Position    [3]float32 `yaml:"position"`
}

type SceneConfig struct {
	// Model is a .gltf/.glb path; empty draws the textured cube
	Model           string     `yaml:"model"`
	DiffuseTexture  string     `yaml:"diffuse_texture"`
	SpecularTexture string     `yaml:"specular_texture"`
	FlipTextures    bool       `yaml:"flip_textures"`
	VertexShader    string     `yaml:"vertex_shader"`
	FragmentShader  string     `yaml:"fragment_shader"`
	ClearColor      [4]float32 `yaml:"clear_color"`

	// SpinRate is the model's rotation speed in degrees per second
	SpinRate float32 `yaml:"spin_rate"`
}

// LightsConfig describes the directional light and any point lights
type LightsConfig struct {
	Directional DirLightConfig     `yaml:"directional"`
	Points      []PointLightConfig `yaml:"points"`
}

type DirLightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
}

type PointLightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
}

func lightsFrom(l render.Lighting) LightsConfig {
	cfg := LightsConfig{
		Directional: DirLightConfig{
			Direction: l.Dir.Direction,
			Ambient:   l.Dir.Ambient,
			Diffuse:   l.Dir.Diffuse,
			Specular:  l.Dir.Specular,
		},
	}
	for _, p := range l.Points {
		cfg.Points = append(cfg.Points, PointLightConfig{
			Position:  p.Position,
			Ambient:   p.Ambient,
			Diffuse:   p.Diffuse,
			Specular:  p.Specular,
			Constant:  p.Constant,
			Linear:    p.Linear,
			Quadratic: p.Quadratic,
		})
	}
	return cfg
}

// Lighting converts the configured lights for the render loop
func (c Config) Lighting() render.Lighting {
	d := c.Lights.Directional
	l := render.Lighting{
		Dir: render.DirLight{
			Direction: d.Direction,
			Ambient:   d.Ambient,
			Diffuse:   d.Diffuse,
			Specular:  d.Specular,
		},
	}
	for _, p := range c.Lights.Points {
		l.Points = append(l.Points, render.PointLight{
			Position:  p.Position,
			Ambient:   p.Ambient,
			Diffuse:   p.Diffuse,
			Specular:  p.Specular,
			Constant:  p.Constant,
			Linear:    p.Linear,
			Quadratic: p.Quadratic,
		})
	}
	return l
}

// Default returns the stock settings
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:         800,
			Height:        600,
			Title:         "flycam",
			VSync:         true,
			StartCaptured: true,
		},
		Camera: CameraConfig{
			FOV:         render.DefaultFOV,
			Speed:       render.DefaultMoveSpeed,
			Sensitivity: render.DefaultSensitivity,
			Position:    [3]float32{0, 0, 3},
		},
		Scene: SceneConfig{
			FlipTextures: true,
			ClearColor:   [4]float32{0.2, 0.3, 0.3, 1},
			SpinRate:     100,
		},
		Lights: lightsFrom(render.DefaultLighting()),
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// a missing file is an error. Unknown fields are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every problem at once; each wraps ErrInvalid
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV < render.MinFOV || c.Camera.FOV >= 180 {
		invalid("camera fov %v must be in [%v, 180) degrees", c.Camera.FOV, render.MinFOV)
	}
	if c.Camera.Speed <= 0 {
		invalid("camera speed %v must be positive", c.Camera.Speed)
	}
	if c.Camera.Sensitivity <= 0 {
		invalid("camera sensitivity %v must be positive", c.Camera.Sensitivity)
	}
	if (c.Scene.VertexShader == "") != (c.Scene.FragmentShader == "") {
		invalid("vertex_shader and fragment_shader must be set together")
	}
	if c.Lights.Directional.Direction == ([3]float32{}) {
		invalid("directional light needs a non-zero direction")
	}
	for i, p := range c.Lights.Points {
		if p.Constant <= 0 || p.Linear < 0 || p.Quadratic < 0 {
			invalid("point light %d attenuation %v/%v/%v: constant must be positive, the rest non-negative",
				i, p.Constant, p.Linear, p.Quadratic)
		}
	}
	for action, names := range c.KeyBindings {
		for _, name := range names {
			if _, err := input.ParseKey(name); err != nil {
				invalid("binding %q: %v", action, err)
			}
		}
	}

	return errors.Join(errs...)
}

// Bindings returns the default layout with the configured actions replaced
func (c Config) Bindings() (*input.Bindings, error) {
	b := input.DefaultBindings()
	for action, names := range c.KeyBindings {
		keys := make([]input.Key, 0, len(names))
		for _, name := range names {
			k, err := input.ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("%w: binding %q: %v", ErrInvalid, action, err)
			}
			keys = append(keys, k)
		}
		b.Bind(action, keys...)
	}
	return b, nil
}
