package viewer

import (
	"image"
	"image/color"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/philipparndt/gowire/pkg/mesh"
)

// Point palettes, outer (dim) to inner (bright)
var (
	normalPointColors   = [3]color.RGBA{{127, 127, 127, 255}, {191, 191, 191, 255}, {255, 255, 255, 255}}
	focusedPointColors  = [3]color.RGBA{{127, 127, 0, 255}, {191, 191, 0, 255}, {255, 255, 0, 255}}
	selectedPointColors = [3]color.RGBA{{127, 0, 0, 255}, {191, 0, 0, 255}, {255, 0, 0, 255}}
)

var labelColor = color.RGBA{255, 255, 255, 255}

// Options control the look of a render pass
type Options struct {
	Camera     CameraSettings
	Background color.Color
	// DrawPoints renders points as small shaded spheres; points stay
	// pickable either way
	DrawPoints bool
	// DrawOrderLabels writes the 1-based draw order next to each
	// drawn primitive
	DrawOrderLabels     bool
	SelectedStrokeWidth float64
	Logger              *slog.Logger
}

// DefaultOptions returns the standard viewer look
func DefaultOptions() Options {
	return Options{
		Camera:              DefaultCameraSettings(),
		Background:          color.Black,
		DrawPoints:          true,
		SelectedStrokeWidth: 3,
	}
}

// Viewer renders a set of meshes with the painter's algorithm and
// answers pick queries against the most recent render pass.
//
// Scene and camera changes must happen on one goroutine. Render and Pick
// may run on different goroutines: the render buffer is replaced under
// a write lock and only read under a read lock.
type Viewer struct {
	Camera *Camera

	opts   Options
	logger *slog.Logger

	meshes  []*mesh.Mesh
	cancels map[*mesh.Mesh]func()

	listeners map[int]func()
	nextID    int

	mu     sync.RWMutex
	buffer []Primitive
}

// New creates an empty viewer
func New(opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	if opts.SelectedStrokeWidth <= 0 {
		opts.SelectedStrokeWidth = 3
	}
	v := &Viewer{
		Camera:    NewCamera(opts.Camera),
		opts:      opts,
		logger:    logger,
		cancels:   make(map[*mesh.Mesh]func()),
		listeners: make(map[int]func()),
	}
	v.Camera.Subscribe(v.RequestRepaint)
	return v
}

// Options returns the options the viewer renders with
func (v *Viewer) Options() Options {
	return v.opts
}

// SetDrawOrderLabels turns the draw order annotation on or off
func (v *Viewer) SetDrawOrderLabels(enabled bool) {
	v.opts.DrawOrderLabels = enabled
	v.RequestRepaint()
}

// Subscribe registers fn to be called whenever the scene needs to be
// repainted. The returned function removes the subscription.
func (v *Viewer) Subscribe(fn func()) (cancel func()) {
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

// RequestRepaint notifies all subscribers
func (v *Viewer) RequestRepaint() {
	for _, fn := range v.listeners {
		fn()
	}
}

// Add puts a mesh into the scene and follows its changes
func (v *Viewer) Add(m *mesh.Mesh) {
	if _, ok := v.cancels[m]; ok {
		return
	}
	v.meshes = append(v.meshes, m)
	v.cancels[m] = m.Subscribe(func(*mesh.Mesh) {
		v.RequestRepaint()
	})
	v.logger.Debug("mesh added", "mesh", m.Name)
	v.RequestRepaint()
}

// Remove takes a mesh out of the scene. Removing an unknown mesh does
// nothing.
func (v *Viewer) Remove(m *mesh.Mesh) {
	cancel, ok := v.cancels[m]
	if !ok {
		return
	}
	cancel()
	delete(v.cancels, m)
	v.meshes = slices.DeleteFunc(v.meshes, func(candidate *mesh.Mesh) bool { return candidate == m })
	v.logger.Debug("mesh removed", "mesh", m.Name)
	v.RequestRepaint()
}

// Meshes returns the meshes in the scene
func (v *Viewer) Meshes() []*mesh.Mesh {
	return slices.Clone(v.meshes)
}

// Bounds returns the bounding box of every point referenced by a
// visible mesh, directly or through its edges and faces.
func (v *Viewer) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, m := range v.meshes {
		if !m.Visible() {
			continue
		}
		for _, p := range m.Points() {
			bbox.Extend(p.Position())
		}
		for _, e := range m.Edges() {
			bbox.Extend(e.Head().Position())
			bbox.Extend(e.Tail().Position())
		}
		for _, f := range m.Faces() {
			for _, p := range f.Vertices() {
				bbox.Extend(p.Position())
			}
		}
	}
	return bbox
}

// Render draws the scene onto c for a viewport of width x height pixels
// and keeps the depth-sorted primitives for Pick.
func (v *Viewer) Render(c Canvas, width, height int) {
	start := time.Now()
	prims := v.collect(width, height)

	v.mu.Lock()
	v.buffer = prims
	v.mu.Unlock()

	c.Clear(v.opts.Background)
	drawn := 0
	for _, p := range prims {
		if !v.draw(c, p) {
			continue
		}
		drawn++
		if v.opts.DrawOrderLabels {
			c.DrawLabel(labelPosition(p), strconv.Itoa(drawn), labelColor)
		}
	}

	v.logger.Debug("rendered scene",
		"width", width,
		"height", height,
		"primitives", len(prims),
		"drawn", drawn,
		"duration", time.Since(start))
}

// Buffer returns the primitives of the last render pass, farthest first
func (v *Viewer) Buffer() []Primitive {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.buffer)
}

// collect projects every visible mesh and returns the primitives in
// front of the viewer sorted farthest first. A primitive with any
// vertex at or behind the viewer is dropped entirely.
func (v *Viewer) collect(width, height int) []Primitive {
	cx := float64(width) / 2
	cy := float64(height) / 2
	project := func(p *mesh.Point) ScreenPoint {
		return v.Camera.Project(cx, cy, p.Position())
	}

	var prims []Primitive
	for _, m := range v.meshes {
		if !m.Visible() {
			continue
		}

		for _, p := range m.Points() {
			sp := project(p)
			if sp.Depth > 0 {
				prims = append(prims, newPrimitive(Target{Mesh: m, Kind: KindPoint, Point: p}, []ScreenPoint{sp}))
			}
		}

		for _, e := range m.Edges() {
			head, tail := project(e.Head()), project(e.Tail())
			if head.Depth > 0 && tail.Depth > 0 {
				prims = append(prims, newPrimitive(Target{Mesh: m, Kind: KindEdge, Edge: e}, []ScreenPoint{head, tail}))
			}
		}

	faces:
		for _, f := range m.Faces() {
			corners := make([]ScreenPoint, 0, f.Len())
			for _, e := range f.Edges() {
				head, tail := project(e.Head()), project(e.Tail())
				if head.Depth <= 0 || tail.Depth <= 0 {
					continue faces
				}
				corners = append(corners, head)
			}
			prims = append(prims, newPrimitive(Target{Mesh: m, Kind: KindFace, Face: f}, corners))
		}
	}

	sortBackToFront(prims)
	return prims
}

// draw paints one primitive and reports whether a draw call was made
func (v *Viewer) draw(c Canvas, p Primitive) bool {
	switch p.Kind {
	case KindPoint:
		if !v.opts.DrawPoints {
			return false
		}
		colors := normalPointColors
		switch {
		case p.Point.Selected():
			colors = selectedPointColors
		case p.Point.Focused():
			colors = focusedPointColors
		}
		at := p.Vertices[0].pixel()
		c.FillCircle(at, 3, colors[0])
		c.FillCircle(at, 2, colors[1])
		c.FillCircle(at, 1, colors[2])
		return true

	case KindEdge:
		col := p.Edge.Color()
		if col == nil {
			return false
		}
		width := 1.0
		if p.Edge.Selected() {
			width = v.opts.SelectedStrokeWidth
		}
		c.DrawLine(p.Vertices[0].pixel(), p.Vertices[1].pixel(), width, col)
		return true

	default:
		col := p.Face.Color()
		if col == nil {
			return false
		}
		points := make([]image.Point, len(p.Vertices))
		for i, sp := range p.Vertices {
			points[i] = sp.pixel()
		}
		c.FillPolygon(points, col)
		return true
	}
}

func (sp ScreenPoint) pixel() image.Point {
	return image.Pt(sp.X, sp.Y)
}

// labelPosition places the draw order label beside a point, next to an
// edge's midpoint, or at a face's vertex centroid.
func labelPosition(p Primitive) image.Point {
	switch p.Kind {
	case KindPoint:
		return image.Pt(p.Vertices[0].X+5, p.Vertices[0].Y)
	case KindEdge:
		head, tail := p.Vertices[0], p.Vertices[1]
		return image.Pt((head.X+tail.X)/2+5, (head.Y+tail.Y)/2+5)
	default:
		sx, sy := 0, 0
		for _, sp := range p.Vertices {
			sx += sp.X
			sy += sp.Y
		}
		n := len(p.Vertices)
		return image.Pt(sx/n, sy/n)
	}
}

// Pick returns the nearest primitive under (x, y) from the last render
// pass. A hit on a mesh that is not focusable hides everything behind it
// and yields no target.
func (v *Viewer) Pick(x, y int) (Target, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for i := len(v.buffer) - 1; i >= 0; i-- {
		p := v.buffer[i]
		if !p.HitTest(x, y) {
			continue
		}
		if !p.Mesh.Focusable() {
			return Target{}, false
		}
		return p.Target, true
	}
	return Target{}, false
}
