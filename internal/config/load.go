package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid reports a config whose values cannot drive the viewer.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the camera and canvas cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180:
		return fmt.Errorf("%w: viewer.fov must be in (0, 180), got %v", ErrInvalid, c.Viewer.FOV)
	case c.Viewer.Near <= 0 || c.Viewer.Far <= c.Viewer.Near:
		return fmt.Errorf("%w: viewer.near/far must satisfy 0 < near < far, got %v/%v", ErrInvalid, c.Viewer.Near, c.Viewer.Far)
	case c.Viewer.FixedWidth <= 0 || c.Viewer.FixedHeight <= 0:
		return fmt.Errorf("%w: viewer fixed canvas size must be positive, got %dx%d", ErrInvalid, c.Viewer.FixedWidth, c.Viewer.FixedHeight)
	case c.Controls.Damping < 0 || c.Controls.Damping > 1:
		// Orbit damping only settles for factors in [0, 1].
		return fmt.Errorf("%w: controls.damping must be in [0, 1], got %v", ErrInvalid, c.Controls.Damping)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GLTFViewer")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GLTFViewer")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gltf-viewer")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gltf-viewer")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
