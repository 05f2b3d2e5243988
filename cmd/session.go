package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/philipparndt/gowire/pkg/config"
	"github.com/philipparndt/gowire/pkg/scene"
	"github.com/philipparndt/gowire/pkg/viewer"
)

// Flags are the options shared by every gowire command
type Flags struct {
	ConfigPath string
	Fit        bool
	Verbose    bool
}

// Register adds the shared flags to fs
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "TOML configuration file")
	fs.BoolVar(&f.Fit, "fit", true, "center the camera on the scene and zoom to fit")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "enable debug logging")
}

// Session is a loaded configuration and scene plus the viewer showing it
type Session struct {
	Config config.Config
	Scene  *scene.Scene
	Viewer *viewer.Viewer
	Logger *slog.Logger
	Path   string
	fit    bool
}

// NewLogger creates the text logger used by all commands
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open loads the configuration and the scene at path. An empty path opens
// the built-in cube.
func (f *Flags) Open(path string) (*Session, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if f.Verbose {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stderr, level)
	slog.SetDefault(logger)

	s := &Session{
		Config: cfg,
		Viewer: viewer.New(cfg.ViewerOptions(logger)),
		Logger: logger,
		Path:   path,
		fit:    f.Fit,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the scene with a fresh copy read from the session path
func (s *Session) Reload() error {
	loaded := scene.Cube()
	if s.Path != "" {
		var err error
		if loaded, err = scene.Load(s.Path); err != nil {
			return err
		}
	}

	if s.Scene != nil {
		for _, m := range s.Scene.Meshes {
			s.Viewer.Remove(m)
		}
	}
	s.Scene = loaded
	for _, m := range loaded.Meshes {
		s.Viewer.Add(m)
	}
	s.Logger.Info("loaded scene", "name", loaded.Name, "meshes", len(loaded.Meshes))

	if s.fit {
		s.Fit(s.Config.Render.Width, s.Config.Render.Height)
	}
	return nil
}

// Fit points the camera at the scene for a viewport of the given size and
// makes that view the one restored by a camera reset
func (s *Session) Fit(width, height int) {
	bbox := s.Viewer.Bounds()
	if bbox.IsEmpty() {
		return
	}
	fitted := viewer.FitSettings(s.Viewer.Camera.Defaults(), bbox, width, height)
	s.Viewer.Camera.SetDefaults(fitted)
	s.Viewer.Camera.Apply(fitted)
	s.Logger.Debug("fitted camera", "center", fitted.WorldCenter, "screen_z", fitted.Screen.Z)
}

// Describe names a pick target using the names from the scene file
func (s *Session) Describe(target viewer.Target) string {
	name := s.Scene.NameOf(target.Entity())
	if name == "" {
		return target.String()
	}
	return fmt.Sprintf("%s %s %s", target.Mesh.Name, target.Kind, name)
}
