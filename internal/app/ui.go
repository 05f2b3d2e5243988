package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gowire/version"
)

var helpLines = []string{
	"Hover: focus",
	"Click: toggle selection",
	"Drag: rotate",
	"Wheel: zoom",
	"Ctrl+L: reset view",
	"O: draw order labels",
	"H: hide help",
}

// drawUI draws the text overlay
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	textColor := rl.NewColor(220, 220, 220, 255)

	theta, phi, _ := app.Session.Viewer.Camera.ViewAngle()
	screen := app.Session.Viewer.Camera.ScreenPosition()
	header := fmt.Sprintf("%s  theta %.2f  phi %.2f  z %.1f", app.Session.Scene.Name, theta, phi, screen.Z)
	rl.DrawTextEx(app.UI.font, header, rl.Vector2{X: 10, Y: y}, fontSize16, 1, textColor)
	y += lineHeight

	if app.UI.focusText != "" {
		rl.DrawTextEx(app.UI.font, "Focus: "+app.UI.focusText, rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Yellow)
		y += lineHeight
	}
	if app.UI.statusText != "" {
		rl.DrawTextEx(app.UI.font, app.UI.statusText, rl.Vector2{X: 10, Y: y}, fontSize14, 1, textColor)
		y += lineHeight
	}

	screenHeight := float32(rl.GetScreenHeight())
	if app.UI.showHelp {
		helpY := screenHeight - float32(len(helpLines)+1)*lineHeight
		for _, line := range helpLines {
			rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: 10, Y: helpY}, fontSize14, 1, textColor)
			helpY += lineHeight
		}
	} else {
		rl.DrawTextEx(app.UI.font, "H: help", rl.Vector2{X: 10, Y: screenHeight - lineHeight - 10}, fontSize14, 1, textColor)
	}

	versionText := "gowire " + version.GetVersion()
	width := rl.MeasureTextEx(app.UI.font, versionText, fontSize14, 1).X
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: float32(rl.GetScreenWidth()) - width - 10, Y: screenHeight - lineHeight - 10}, fontSize14, 1, textColor)
}
