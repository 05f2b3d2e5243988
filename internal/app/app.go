package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/gowire/cmd"
	"github.com/philipparndt/gowire/pkg/viewer"
)

// Run opens a window on the session's scene and blocks until it is closed
func Run(session *cmd.Session) error {
	cfg := session.Config.Render
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "gowire - "+session.Scene.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	// faces are drawn in either winding
	rl.DisableBackfaceCulling()

	app := &App{
		Session: session,
		Focus:   viewer.NewFocusTracker(session.Viewer),
	}
	app.Focus.Subscribe(app.onFocus)

	if session.Path != "" {
		if err := app.setupFileWatcher(); err != nil {
			session.Logger.Warn("auto-reload not available", "error", err)
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	app.UI.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, 32, nil)
	defer rl.UnloadFont(app.UI.font)
	canvas := &screenCanvas{font: app.UI.font}

	for !rl.WindowShouldClose() {
		if app.FileWatch.needsReload.CompareAndSwap(true, false) {
			app.reload()
		}

		app.handleInput()

		rl.BeginDrawing()
		session.Viewer.Render(canvas, rl.GetScreenWidth(), rl.GetScreenHeight())
		app.drawUI()
		rl.EndDrawing()
	}
	return nil
}

func (app *App) onFocus(event viewer.FocusEvent) {
	if event.Type == viewer.FocusGained {
		app.UI.focusText = app.Session.Describe(event.Target)
	} else {
		app.UI.focusText = ""
	}
}

// reload reads the scene again and keeps the current view
func (app *App) reload() {
	settings := app.Session.Viewer.Camera.Settings()
	app.Focus.Clear()
	if err := app.Session.Reload(); err != nil {
		app.UI.statusText = fmt.Sprintf("Reload failed: %v", err)
		app.Session.Logger.Error("failed to reload scene", "error", err)
		return
	}
	app.Session.Viewer.Camera.Apply(settings)
	app.UI.statusText = "Reloaded " + app.Session.Scene.Name
	rl.SetWindowTitle("gowire - " + app.Session.Scene.Name)
}
