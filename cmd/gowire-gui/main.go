package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gowire/cmd"
	"github.com/philipparndt/gowire/internal/gui"
	"github.com/philipparndt/gowire/pkg/analysis"
	"github.com/philipparndt/gowire/pkg/viewer"
)

type App struct {
	window    fyne.Window
	session   *cmd.Session
	view      *gui.SceneView
	infoLabel *widget.Label
	focus     *widget.Label
	selection *widget.Label
}

func main() {
	cmd.Execute(cmd.NewViewerCommand("gowire-gui", "Interactive scene viewer", run))
}

func run(session *cmd.Session) error {
	a := app.New()
	w := a.NewWindow("gowire - " + session.Scene.Name)

	appInstance := &App{
		window:    w,
		session:   session,
		view:      gui.NewSceneView(session.Viewer),
		infoLabel: widget.NewLabel(""),
		focus:     widget.NewLabel("Focus: -"),
		selection: widget.NewLabel("Selected: -"),
	}
	appInstance.setupMainUI()

	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyL, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		appInstance.view.ResetCamera()
	})

	cfg := session.Config.Render
	w.Resize(fyne.NewSize(float32(cfg.Width)+300, float32(cfg.Height)))
	w.ShowAndRun()
	return nil
}

func (a *App) setupMainUI() {
	a.view.Focus().Subscribe(func(event viewer.FocusEvent) {
		if event.Type == viewer.FocusGained {
			a.focus.SetText("Focus: " + a.session.Describe(event.Target))
		} else {
			a.focus.SetText("Focus: -")
		}
	})
	a.view.SetOnSelect(func(target viewer.Target) {
		state := "deselected"
		if target.Entity().Selected() {
			state = "selected"
		}
		a.selection.SetText(fmt.Sprintf("%s: %s", state, a.session.Describe(target)))
	})

	openButton := widget.NewButton("Open File", a.showFileDialog)
	resetButton := widget.NewButton("Reset View (Ctrl+L)", a.view.ResetCamera)

	labelsCheck := widget.NewCheck("Show Draw Order", func(checked bool) {
		a.session.Viewer.SetDrawOrderLabels(checked)
	})
	labelsCheck.SetChecked(a.session.Viewer.Options().DrawOrderLabels)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Hover to focus points, edges and faces\n" +
			"• Click to toggle the selection\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	a.updateInfo()
	infoPanel := container.NewVBox(
		widget.NewLabel("Scene Information:"),
		widget.NewSeparator(),
		a.infoLabel,
		widget.NewSeparator(),
		a.focus,
		a.selection,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		labelsCheck,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		resetButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(nil, nil, nil, infoScroll, a.view)
	a.window.SetContent(content)
}

func (a *App) updateInfo() {
	result := analysis.Analyze(a.session.Scene.Meshes)
	a.infoLabel.SetText(fmt.Sprintf(
		"Scene: %s\nMeshes: %d\nPoints: %d\nEdges: %d\nFaces: %d\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		a.session.Scene.Name,
		len(result.Meshes),
		result.Points,
		result.Edges,
		result.Faces,
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
	))
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		previous := a.session.Path
		a.session.Path = reader.URI().Path()
		if err := a.session.Reload(); err != nil {
			a.session.Path = previous
			dialog.ShowError(fmt.Errorf("failed to load scene: %w", err), a.window)
			return
		}
		a.window.SetTitle("gowire - " + a.session.Scene.Name)
		a.updateInfo()
	}, a.window)
}
