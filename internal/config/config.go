// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Controls   ControlsConfig   `yaml:"controls"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds OS window settings.
type WindowConfig struct {
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	VSync   bool `yaml:"vsync"`
	HighDPI bool `yaml:"high_dpi"`
}

// ViewerConfig holds viewport camera and canvas settings.
type ViewerConfig struct {
	FOV          float32    `yaml:"fov"` // degrees
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	FixedWidth   int        `yaml:"fixed_width"`
	FixedHeight  int        `yaml:"fixed_height"`
	StartFluid   bool       `yaml:"start_fluid"`
	Background   [3]float32 `yaml:"background"`
	ShowBounds   bool       `yaml:"show_bounds"`
	SidebarWidth int        `yaml:"sidebar_width"`
}

// ControlsConfig holds orbit control tuning.
type ControlsConfig struct {
	RotateSpeed float32 `yaml:"rotate_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	PanSpeed    float32 `yaml:"pan_speed"`
	Damping     float32 `yaml:"damping"` // 0 disables damping
}

// ScreenshotConfig holds canvas capture settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:   1400,
			Height:  800,
			VSync:   true,
			HighDPI: true,
		},
		Viewer: ViewerConfig{
			FOV:          75,
			Near:         0.1,
			Far:          1000,
			FixedWidth:   1024,
			FixedHeight:  600,
			StartFluid:   false,
			Background:   [3]float32{0, 0, 0},
			ShowBounds:   false,
			SidebarWidth: 320,
		},
		Controls: ControlsConfig{
			RotateSpeed: 1.0,
			ZoomSpeed:   1.0,
			PanSpeed:    1.0,
			Damping:     0,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "gltf",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
	}
}
