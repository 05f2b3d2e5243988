// Package config loads viewer settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/philipparndt/gowire/pkg/viewer"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid configuration")

// Config is the content of a configuration file
type Config struct {
	Camera Camera `toml:"camera"`
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
}

// Camera holds the default camera parameters
type Camera struct {
	Theta       float64    `toml:"theta"`
	Phi         float64    `toml:"phi"`
	ViewAngleZ  float64    `toml:"view_angle_z"`
	Screen      [3]float64 `toml:"screen"`
	WorldCenter [3]float64 `toml:"world_center"`
	ModelScale  int        `toml:"model_scale"`
}

// Render holds output and look settings
type Render struct {
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	Background      string  `toml:"background"`
	DrawPoints      bool    `toml:"draw_points"`
	DrawOrderLabels bool    `toml:"draw_order_labels"`
	SelectedStroke  float64 `toml:"selected_stroke"`
}

// Log holds the logging settings
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration
func Default() Config {
	cam := viewer.DefaultCameraSettings()
	return Config{
		Camera: Camera{
			Theta:       cam.Theta,
			Phi:         cam.Phi,
			ViewAngleZ:  cam.ViewAngleZ,
			Screen:      [3]float64{cam.Screen.X, cam.Screen.Y, cam.Screen.Z},
			WorldCenter: [3]float64{cam.WorldCenter.X, cam.WorldCenter.Y, cam.WorldCenter.Z},
			ModelScale:  cam.ModelScale,
		},
		Render: Render{
			Width:          800,
			Height:         600,
			Background:     "#000000",
			DrawPoints:     true,
			SelectedStroke: 3,
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads path on top of the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of the defaults
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Render.Width <= 0 {
		return fmt.Errorf("%w: render.width must be positive, got %d", ErrInvalid, c.Render.Width)
	}
	if c.Render.Height <= 0 {
		return fmt.Errorf("%w: render.height must be positive, got %d", ErrInvalid, c.Render.Height)
	}
	if c.Render.SelectedStroke <= 0 {
		return fmt.Errorf("%w: render.selected_stroke must be positive, got %g", ErrInvalid, c.Render.SelectedStroke)
	}
	if c.Camera.ModelScale == 0 {
		return fmt.Errorf("%w: camera.model_scale must not be zero", ErrInvalid)
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// CameraSettings converts the camera section for the viewer
func (c Config) CameraSettings() viewer.CameraSettings {
	cam := c.Camera
	return viewer.CameraSettings{
		Theta:       cam.Theta,
		Phi:         cam.Phi,
		ViewAngleZ:  cam.ViewAngleZ,
		Screen:      geometry.NewVector3(cam.Screen[0], cam.Screen[1], cam.Screen[2]),
		WorldCenter: geometry.NewVector3(cam.WorldCenter[0], cam.WorldCenter[1], cam.WorldCenter[2]),
		ModelScale:  cam.ModelScale,
	}
}

// ViewerOptions converts the configuration for the viewer. The config
// must be valid.
func (c Config) ViewerOptions(logger *slog.Logger) viewer.Options {
	background, err := ParseColor(c.Render.Background)
	if err != nil {
		background = color.RGBA{A: 255}
	}
	return viewer.Options{
		Camera:              c.CameraSettings(),
		Background:          background,
		DrawPoints:          c.Render.DrawPoints,
		DrawOrderLabels:     c.Render.DrawOrderLabels,
		SelectedStrokeWidth: c.Render.SelectedStroke,
		Logger:              logger,
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(hex string) (color.RGBA, error) {
	s, ok := strings.CutPrefix(hex, "#")
	if !ok || (len(s) != 6 && len(s) != 8) {
		return color.RGBA{}, fmt.Errorf("%w: color %q must look like #rrggbb or #rrggbbaa", ErrInvalid, hex)
	}
	if len(s) == 6 {
		s += "ff"
	}
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, hex, err)
	}
	return color.RGBA{
		R: uint8(value >> 24),
		G: uint8(value >> 16),
		B: uint8(value >> 8),
		A: uint8(value),
	}, nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, name)
	}
	return level, nil
}
