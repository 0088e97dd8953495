// Package config loads the settings for the cube viewer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Camera struct {
	Eye    [3]float32 `yaml:"eye"`
	Center [3]float32 `yaml:"center"`
	Up     [3]float32 `yaml:"up"`
}

// Projection holds the perspective parameters. FovY is in degrees.
type Projection struct {
	FovY float32 `yaml:"fov_y"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// Shaders optionally replaces the embedded GLSL with files on disk.
type Shaders struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

type Config struct {
	Window     Window     `yaml:"window"`
	ClearColor [4]float32 `yaml:"clear_color"`
	Camera     Camera     `yaml:"camera"`
	Projection Projection `yaml:"projection"`
	Shaders    Shaders    `yaml:"shaders"`
	LogLevel   string     `yaml:"log_level"`
}

// Default returns the built-in settings: a 640x480 window with a black
// background, looking at the origin from (3, 3, 5).
func Default() Config {
	return Config{
		Window: Window{
			Title:  "Color Cube",
			Width:  640,
			Height: 480,
		},
		ClearColor: [4]float32{0, 0, 0, 1},
		Camera: Camera{
			Eye:    [3]float32{3, 3, 5},
			Center: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
		},
		Projection: Projection{
			FovY: 45,
			Near: 0.1,
			Far:  10,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. An empty path gives the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	slog.Debug("loaded config", "path", path)
	return cfg, nil
}

// Decode parses YAML into cfg, keeping fields the document leaves out.
// Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	for i, v := range c.ClearColor {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("clear_color[%d] = %g outside [0, 1]", i, v)
		}
	}
	p := c.Projection
	if !(p.FovY > 0 && p.FovY < 180) {
		return fmt.Errorf("projection fov_y %g outside (0, 180)", p.FovY)
	}
	if !(p.Near > 0 && p.Near < p.Far) {
		return fmt.Errorf("projection needs 0 < near < far, got near %g far %g", p.Near, p.Far)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel as a slog level name.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
