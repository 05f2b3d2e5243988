// Package gui hosts the scene viewer in a fyne widget.
package gui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gowire/pkg/viewer"
)

// SceneView shows a viewer scene and forwards pointer input to it:
// hover focuses, tap toggles selection, drag orbits and scroll zooms.
type SceneView struct {
	widget.BaseWidget

	viewer *viewer.Viewer
	focus  *viewer.FocusTracker
	raster *canvas.Raster

	mu     sync.Mutex
	canvas *viewer.ImageCanvas
	// pixels per fyne unit of the last rendered frame
	scale float32

	dragging bool
	onSelect func(viewer.Target)
}

var (
	_ fyne.Draggable      = (*SceneView)(nil)
	_ fyne.Tappable       = (*SceneView)(nil)
	_ fyne.Scrollable     = (*SceneView)(nil)
	_ desktop.Hoverable   = (*SceneView)(nil)
	_ fyne.WidgetRenderer = (*sceneViewRenderer)(nil)
)

// NewSceneView creates a widget showing v
func NewSceneView(v *viewer.Viewer) *SceneView {
	view := &SceneView{
		viewer: v,
		focus:  viewer.NewFocusTracker(v),
		scale:  1,
	}
	view.raster = canvas.NewRaster(view.draw)
	view.ExtendBaseWidget(view)

	v.Subscribe(func() {
		fyne.Do(view.raster.Refresh)
	})
	return view
}

// Focus returns the tracker that follows the pointer
func (s *SceneView) Focus() *viewer.FocusTracker {
	return s.focus
}

// SetOnSelect sets the callback for taps that toggle a selection
func (s *SceneView) SetOnSelect(callback func(viewer.Target)) {
	s.onSelect = callback
}

// draw renders a frame of w x h pixels
func (s *SceneView) draw(w, h int) image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.canvas == nil || s.canvas.Image().Bounds().Dx() != w || s.canvas.Image().Bounds().Dy() != h {
		s.canvas = viewer.NewImageCanvas(w, h)
	}
	s.viewer.Render(s.canvas, w, h)
	if size := s.Size(); size.Width > 0 {
		s.scale = float32(w) / size.Width
	}
	return s.canvas.Image()
}

// pixel converts a widget position into frame pixels
func (s *SceneView) pixel(pos fyne.Position) (int, int) {
	s.mu.Lock()
	scale := s.scale
	s.mu.Unlock()
	return int(pos.X * scale), int(pos.Y * scale)
}

// CreateRenderer implements fyne.Widget
func (s *SceneView) CreateRenderer() fyne.WidgetRenderer {
	return &sceneViewRenderer{view: s}
}

// MouseIn implements desktop.Hoverable
func (s *SceneView) MouseIn(event *desktop.MouseEvent) {
	s.focus.Update(s.pixel(event.Position))
}

// MouseMoved implements desktop.Hoverable
func (s *SceneView) MouseMoved(event *desktop.MouseEvent) {
	if s.dragging {
		return
	}
	s.focus.Update(s.pixel(event.Position))
}

// MouseOut implements desktop.Hoverable
func (s *SceneView) MouseOut() {
	s.focus.Clear()
}

// Tapped toggles the selection of whatever lies under the pointer
func (s *SceneView) Tapped(event *fyne.PointEvent) {
	s.focus.Update(s.pixel(event.Position))
	target, ok := s.focus.ToggleSelection()
	if ok && s.onSelect != nil {
		s.onSelect(target)
	}
}

// Dragged orbits the camera
func (s *SceneView) Dragged(event *fyne.DragEvent) {
	s.dragging = true
	s.viewer.Camera.Orbit(float64(event.Dragged.DX), float64(event.Dragged.DY))
}

// DragEnd implements fyne.Draggable
func (s *SceneView) DragEnd() {
	s.dragging = false
}

// Scrolled zooms one step per event
func (s *SceneView) Scrolled(event *fyne.ScrollEvent) {
	if event.Scrolled.DY == 0 {
		return
	}
	s.viewer.Camera.Zoom(event.Scrolled.DY < 0)
}

// ResetCamera restores the default view
func (s *SceneView) ResetCamera() {
	s.viewer.Camera.Reset()
}

type sceneViewRenderer struct {
	view *SceneView
}

func (r *sceneViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
}

func (r *sceneViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sceneViewRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *sceneViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *sceneViewRenderer) Destroy() {}
