// Package config handles showcase configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/taigrr/showcase/pkg/render"
)

// Config holds all showcase settings.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Camera    CameraConfig    `yaml:"camera"`
	Particles ParticlesConfig `yaml:"particles"`
	Models    []ModelConfig   `yaml:"models"`
	Hero      *ModelConfig    `yaml:"hero,omitempty"`
	Audio     AudioConfig     `yaml:"audio"`
	Logging   LoggingConfig   `yaml:"logging"`

	dir string // directory relative asset paths resolve against
}

// DisplayConfig holds frame pacing and layout settings.
type DisplayConfig struct {
	FPS         int    `yaml:"fps"`
	Background  string `yaml:"background"`
	NarrowWidth int    `yaml:"narrow_width"` // Columns below which the progress bar is vertical
}

// CameraConfig holds the perspective camera settings.
type CameraConfig struct {
	FOV      float64    `yaml:"fov"` // Vertical field of view in degrees
	Position [3]float64 `yaml:"position"`
}

// ParticlesConfig holds point-cloud settings shared by every model.
type ParticlesConfig struct {
	Count     int     `yaml:"count"`
	HeroCount int     `yaml:"hero_count"`
	PointSize float64 `yaml:"point_size"`
	Seed      int64   `yaml:"seed"` // 0 seeds from the clock
}

// ModelConfig describes one showcased model.
type ModelConfig struct {
	Name        string   `yaml:"name"`
	File        string   `yaml:"file"` // Empty for a procedural cloud
	Color1      string   `yaml:"color1"`
	Color2      string   `yaml:"color2"`
	PlaceOnLoad bool     `yaml:"place_on_load"`
	Pressed     float64  `yaml:"pressed"`
	Hero        bool     `yaml:"hero"`
	Images      []string `yaml:"images"`
}

// AudioConfig holds audio cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock water/dragon/machine showcase.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			FPS:         60,
			Background:  "#0a0a0f",
			NarrowWidth: 100,
		},
		Camera: CameraConfig{
			FOV:      40,
			Position: [3]float64{0, 1, 5},
		},
		Particles: ParticlesConfig{
			Count:     40000,
			HeroCount: 100000,
			PointSize: 1.3,
		},
		Models: []ModelConfig{
			{
				Name:        "water",
				File:        "models/water.glb",
				Color1:      "white",
				Color2:      "yellow",
				PlaceOnLoad: true,
				Images:      []string{"pdfs/water.jpg", "pdfs/water2.jpg"},
			},
			{
				Name:   "dragon",
				File:   "models/dragon2.glb",
				Color1: "white",
				Color2: "green",
				Images: []string{"pdfs/dragon.jpg"},
			},
			{
				Name:   "machine",
				File:   "models/machine2.glb",
				Color1: "purple",
				Color2: "white",
				Images: []string{"pdfs/machine.jpg"},
			},
		},
		Hero: &ModelConfig{
			Name:        "hero-particles",
			File:        "models/dragon2.glb",
			Color1:      "purple",
			Color2:      "white",
			PlaceOnLoad: true,
			Pressed:     1.2,
			Hero:        true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return errors.New("no models configured")
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("display.fps must be positive, got %d", c.Display.FPS)
	}
	if c.Particles.Count <= 0 {
		return fmt.Errorf("particles.count must be positive, got %d", c.Particles.Count)
	}
	if _, err := render.ParseColor(c.Display.Background); err != nil {
		return fmt.Errorf("display.background: %w", err)
	}

	all := c.Models
	if c.Hero != nil {
		all = append(all[:len(all):len(all)], *c.Hero)
	}
	for _, m := range all {
		if m.Name == "" {
			return errors.New("model without a name")
		}
		for _, col := range []string{m.Color1, m.Color2} {
			if _, err := render.ParseColor(col); err != nil {
				return fmt.Errorf("model %s: %w", m.Name, err)
			}
		}
	}
	return nil
}

// Resolve returns path relative to the directory the config was loaded
// from. Absolute paths are returned unchanged.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
