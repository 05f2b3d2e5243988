package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// clickSlop is how far the mouse may move, in pixels, for a press and
// release to still count as a click
const clickSlop = 3

// handleInput processes user input
func (app *App) handleInput() {
	camera := app.Session.Viewer.Camera
	mouse := rl.GetMousePosition()

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyL) {
		camera.Reset()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		app.Session.Viewer.SetDrawOrderLabels(!app.Session.Viewer.Options().DrawOrderLabels)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.UI.showHelp = !app.UI.showHelp
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		app.Interaction.mouseDownPos = mouse
		app.Interaction.mouseMoved = false
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		if rl.Vector2Distance(mouse, app.Interaction.mouseDownPos) > clickSlop {
			app.Interaction.mouseMoved = true
		}
		if app.Interaction.mouseMoved && (delta.X != 0 || delta.Y != 0) {
			app.Interaction.dragging = true
			camera.Orbit(float64(delta.X), float64(delta.Y))
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if !app.Interaction.mouseMoved {
			app.Focus.Update(int(mouse.X), int(mouse.Y))
			if target, ok := app.Focus.ToggleSelection(); ok {
				app.UI.statusText = "Toggled " + app.Session.Describe(target)
			}
		}
		app.Interaction.dragging = false
	}

	if !app.Interaction.dragging {
		app.Focus.Update(int(mouse.X), int(mouse.Y))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		camera.Zoom(wheel < 0)
	}
}
