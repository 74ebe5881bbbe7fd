package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"collide3d/internal/physics"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the viewer looks for its config, relative to the working directory
const DefaultPath = "collide3d.yaml"

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config holds viewer preferences. Simulation parameters live in the level file.
type Config struct {
	Window           Window  `yaml:"window"`
	TargetFPS        int32   `yaml:"targetFPS"`
	Level            string  `yaml:"level,omitempty"` // empty means the built-in level
	Debug            bool    `yaml:"debug"`
	VerticalPriority string  `yaml:"verticalPriority,omitempty"` // overrides the level when set
	MouseSensitivity float32 `yaml:"mouseSensitivity"`
	CameraDistance   float32 `yaml:"cameraDistance"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "collide3d",
		},
		TargetFPS:        60,
		MouseSensitivity: 0.1,
		CameraDistance:   6,
	}
}

// Load reads a config file on top of Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config, creating its directory if needed
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.TargetFPS < 0 {
		return fmt.Errorf("targetFPS %d must not be negative", c.TargetFPS)
	}
	if c.CameraDistance <= 0 {
		return fmt.Errorf("cameraDistance must be positive")
	}
	if _, err := physics.ParseVerticalPriority(c.VerticalPriority); err != nil {
		return err
	}
	return nil
}

// Priority returns the configured vertical priority and whether one was set at all
func (c Config) Priority() (physics.VerticalPriority, bool) {
	if c.VerticalPriority == "" {
		return physics.VerticalFree, false
	}
	p, err := physics.ParseVerticalPriority(c.VerticalPriority)
	if err != nil {
		return physics.VerticalFree, false
	}
	return p, true
}
