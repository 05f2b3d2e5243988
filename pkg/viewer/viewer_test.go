package viewer

import (
	"image"
	"image/color"
	"testing"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/philipparndt/gowire/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op     string
	points []image.Point
	radius float64
	width  float64
	color  color.Color
	text   string
}

// recordingCanvas remembers every draw call in order
type recordingCanvas struct {
	calls []call
}

func (c *recordingCanvas) Clear(col color.Color) {
	c.calls = append(c.calls, call{op: "clear", color: col})
}

func (c *recordingCanvas) FillCircle(center image.Point, radius float64, col color.Color) {
	c.calls = append(c.calls, call{op: "circle", points: []image.Point{center}, radius: radius, color: col})
}

func (c *recordingCanvas) DrawLine(from, to image.Point, width float64, col color.Color) {
	c.calls = append(c.calls, call{op: "line", points: []image.Point{from, to}, width: width, color: col})
}

func (c *recordingCanvas) FillPolygon(points []image.Point, col color.Color) {
	c.calls = append(c.calls, call{op: "polygon", points: points, color: col})
}

func (c *recordingCanvas) DrawLabel(at image.Point, text string, col color.Color) {
	c.calls = append(c.calls, call{op: "label", points: []image.Point{at}, text: text, color: col})
}

func (c *recordingCanvas) ops(op string) []call {
	var result []call
	for _, cl := range c.calls {
		if cl.op == op {
			result = append(result, cl)
		}
	}
	return result
}

// frontCamera looks along +y: depth equals the point's y, screen x is
// x/depth and screen y is -z/depth relative to the viewport center.
func frontCamera() CameraSettings {
	return CameraSettings{ViewAngleZ: 1, ModelScale: 1}
}

func newTestViewer(settings CameraSettings) *Viewer {
	opts := DefaultOptions()
	opts.Camera = settings
	return New(opts)
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func TestRenderDrawsFarthestFirst(t *testing.T) {
	v := newTestViewer(frontCamera())
	m := mesh.New("points")
	// x is chosen so the projected column tells the points apart
	m.AddPoint(mesh.NewPoint(3, 1, 0))
	m.AddPoint(mesh.NewPoint(10, 10, 0))
	m.AddPoint(mesh.NewPoint(10, 5, 0))
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 100, 100)

	buffer := v.Buffer()
	require.Len(t, buffer, 3)
	assert.Equal(t, []float64{10, 5, 1}, []float64{buffer[0].Depth, buffer[1].Depth, buffer[2].Depth})

	var columns []int
	for _, c := range canvas.ops("circle") {
		if c.radius == 3 {
			columns = append(columns, c.points[0].X)
		}
	}
	assert.Equal(t, []int{51, 52, 53}, columns)
	assert.Equal(t, "clear", canvas.calls[0].op)
}

func TestRenderPointPalettes(t *testing.T) {
	v := newTestViewer(frontCamera())
	m := mesh.New("points")
	normal := mesh.NewPoint(0, 1, 0)
	focused := mesh.NewPoint(0, 2, 0)
	focused.SetFocused(true)
	selected := mesh.NewPoint(0, 3, 0)
	selected.SetSelected(true)
	selected.SetFocused(true)
	m.AddPoint(normal)
	m.AddPoint(focused)
	m.AddPoint(selected)
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 10, 10)

	circles := canvas.ops("circle")
	require.Len(t, circles, 9)
	expected := [][3]color.RGBA{selectedPointColors, focusedPointColors, normalPointColors}
	for i, palette := range expected {
		for j := range 3 {
			c := circles[i*3+j]
			assert.Equal(t, float64(3-j), c.radius)
			assert.Equal(t, palette[j], c.color)
		}
	}
}

func TestRenderCullsPrimitivesBehindViewer(t *testing.T) {
	v := newTestViewer(frontCamera())
	m := mesh.New("culling")
	front := mesh.NewPoint(0, 2, 0)
	behind := mesh.NewPoint(0, -1, 0)
	onPlane := mesh.NewPoint(1, 0, 0)
	m.AddPoint(front)
	m.AddPoint(behind)
	m.AddPoint(onPlane)
	coloring := mesh.NewColoring(red, nil, nil)
	m.AddEdge(mesh.NewEdge(coloring, front, behind))
	m.AddEdge(mesh.NewEdge(coloring, front, onPlane))
	kept := mesh.NewEdge(coloring, front, mesh.NewPoint(1, 4, 0))
	m.AddEdge(kept)
	v.Add(m)

	v.Render(&recordingCanvas{}, 100, 100)

	buffer := v.Buffer()
	require.Len(t, buffer, 2)
	for _, p := range buffer {
		switch p.Kind {
		case KindPoint:
			assert.Same(t, front, p.Point)
		case KindEdge:
			assert.Same(t, kept, p.Edge)
			assert.Equal(t, 3.0, p.Depth)
		default:
			t.Fatalf("unexpected primitive %v", p.Target)
		}
	}
}

func TestRenderDropsFaceWithAnyVertexBehind(t *testing.T) {
	v := newTestViewer(frontCamera())
	a := mesh.NewPoint(-1, 2, -1)
	b := mesh.NewPoint(1, 2, -1)
	c := mesh.NewPoint(0, -2, 1)
	face, err := mesh.NewFace(mesh.NewColoring(green, nil, nil),
		mesh.NewEdge(nil, a, b), mesh.NewEdge(nil, b, c), mesh.NewEdge(nil, c, a))
	require.NoError(t, err)
	m := mesh.New("faces")
	m.AddFace(face)
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 100, 100)

	assert.Empty(t, v.Buffer())
	assert.Empty(t, canvas.ops("polygon"))
}

func TestRenderEdgesAndFaces(t *testing.T) {
	v := newTestViewer(frontCamera())
	a := mesh.NewPoint(-10, 10, 10)
	b := mesh.NewPoint(10, 10, 10)
	c := mesh.NewPoint(10, 10, -10)
	d := mesh.NewPoint(-10, 10, -10)
	edges := []*mesh.Edge{
		mesh.NewEdge(nil, a, b),
		mesh.NewEdge(nil, b, c),
		mesh.NewEdge(nil, c, d),
		mesh.NewEdge(nil, d, a),
	}
	face, err := mesh.NewFace(mesh.NewColoring(green, nil, nil), edges...)
	require.NoError(t, err)

	outline := mesh.NewEdge(mesh.NewColoring(red, blue, nil), mesh.NewPoint(-20, 5, 0), mesh.NewPoint(20, 5, 0))
	outline.SetSelected(true)

	m := mesh.New("square")
	m.AddFace(face)
	m.AddEdge(outline)
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 100, 100)

	polygons := canvas.ops("polygon")
	require.Len(t, polygons, 1)
	assert.Equal(t, []image.Point{{49, 49}, {51, 49}, {51, 51}, {49, 51}}, polygons[0].points)
	assert.Equal(t, green, polygons[0].color)

	lines := canvas.ops("line")
	require.Len(t, lines, 1)
	assert.Equal(t, 3.0, lines[0].width)
	assert.Equal(t, blue, lines[0].color)
	assert.Equal(t, []image.Point{{46, 50}, {54, 50}}, lines[0].points)

	// the face is farther away and is painted first
	assert.Equal(t, "polygon", canvas.calls[1].op)
}

func TestRenderSkipsUncoloredButKeepsThemPickable(t *testing.T) {
	v := newTestViewer(frontCamera())
	a := mesh.NewPoint(-10, 1, 10)
	b := mesh.NewPoint(10, 1, 10)
	c := mesh.NewPoint(0, 1, -10)
	face, err := mesh.NewFace(nil, mesh.NewEdge(nil, a, b), mesh.NewEdge(nil, b, c), mesh.NewEdge(nil, c, a))
	require.NoError(t, err)
	m := mesh.New("ghost")
	m.AddFace(face)
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 100, 100)

	assert.Len(t, canvas.calls, 1)
	target, ok := v.Pick(50, 52)
	require.True(t, ok)
	assert.Same(t, face, target.Face)
}

func TestRenderOrderLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.Camera = frontCamera()
	opts.DrawOrderLabels = true
	v := New(opts)
	m := mesh.New("labels")
	m.AddPoint(mesh.NewPoint(0, 2, 0))
	m.AddEdge(mesh.NewEdge(mesh.NewColoring(red, nil, nil), mesh.NewPoint(-4, 1, 0), mesh.NewPoint(4, 1, 0)))
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 100, 100)

	labels := canvas.ops("label")
	require.Len(t, labels, 2)
	assert.Equal(t, "1", labels[0].text)
	assert.Equal(t, image.Pt(55, 50), labels[0].points[0])
	assert.Equal(t, "2", labels[1].text)
	assert.Equal(t, image.Pt(55, 55), labels[1].points[0])
}

func TestPickRoundTrip(t *testing.T) {
	v := New(DefaultOptions())
	p := mesh.NewPoint(0, 0, 0)
	m := mesh.New("origin")
	m.AddPoint(p)
	v.Add(m)

	v.Render(&recordingCanvas{}, 200, 200)
	sp := v.Camera.Project(100, 100, p.Position())
	require.Greater(t, sp.Depth, 0.0)

	target, ok := v.Pick(sp.X, sp.Y)
	require.True(t, ok)
	assert.Equal(t, KindPoint, target.Kind)
	assert.Same(t, p, target.Point)
	assert.Same(t, m, target.Mesh)

	_, ok = v.Pick(sp.X+10, sp.Y)
	assert.False(t, ok)

	m.SetFocusable(false)
	v.Render(&recordingCanvas{}, 200, 200)
	_, ok = v.Pick(sp.X, sp.Y)
	assert.False(t, ok)
}

func TestPickNonFocusableOccludes(t *testing.T) {
	v := newTestViewer(frontCamera())
	back := mesh.New("back")
	backPoint := mesh.NewPoint(0, 10, 0)
	back.AddPoint(backPoint)
	front := mesh.New("front")
	frontPoint := mesh.NewPoint(0, 1, 0)
	front.AddPoint(frontPoint)
	front.SetFocusable(false)
	v.Add(back)
	v.Add(front)

	v.Render(&recordingCanvas{}, 100, 100)
	_, ok := v.Pick(50, 50)
	assert.False(t, ok)

	front.SetFocusable(true)
	target, ok := v.Pick(50, 50)
	require.True(t, ok)
	assert.Same(t, frontPoint, target.Point)

	v.Remove(front)
	v.Render(&recordingCanvas{}, 100, 100)
	target, ok = v.Pick(50, 50)
	require.True(t, ok)
	assert.Same(t, backPoint, target.Point)
}

func TestPickBeforeRender(t *testing.T) {
	v := New(DefaultOptions())
	m := mesh.New("m")
	m.AddPoint(mesh.NewPoint(0, 0, 0))
	v.Add(m)

	_, ok := v.Pick(0, 0)
	assert.False(t, ok)
}

func TestInvisibleMeshIsNotRendered(t *testing.T) {
	v := New(DefaultOptions())
	m := mesh.New("hidden")
	m.AddPoint(mesh.NewPoint(0, 0, 0))
	m.SetVisible(false)
	v.Add(m)

	canvas := &recordingCanvas{}
	v.Render(canvas, 100, 100)
	assert.Len(t, canvas.calls, 1)
	assert.Empty(t, v.Buffer())
	assert.True(t, v.Bounds().IsEmpty())
}

func TestRepaintNotifications(t *testing.T) {
	v := New(DefaultOptions())
	repaints := 0
	cancel := v.Subscribe(func() { repaints++ })

	m := mesh.New("m")
	v.Add(m)
	assert.Equal(t, 1, repaints)

	m.AddPoint(mesh.NewPoint(1, 2, 3))
	assert.Equal(t, 2, repaints)

	v.Camera.Orbit(10, 0)
	assert.Equal(t, 3, repaints)

	v.Remove(m)
	assert.Equal(t, 4, repaints)
	m.AddPoint(mesh.NewPoint(3, 2, 1))
	assert.Equal(t, 4, repaints)

	cancel()
	v.RequestRepaint()
	assert.Equal(t, 4, repaints)
}

func TestAddTwiceKeepsOneCopy(t *testing.T) {
	v := New(DefaultOptions())
	m := mesh.New("m")
	v.Add(m)
	v.Add(m)
	assert.Len(t, v.Meshes(), 1)

	v.Remove(m)
	v.Remove(m)
	assert.Empty(t, v.Meshes())
}

func TestBoundsIncludesReferencedPoints(t *testing.T) {
	v := New(DefaultOptions())
	m := mesh.New("m")
	m.AddPoint(mesh.NewPoint(1, 1, 1))
	m.AddEdge(mesh.NewEdge(nil, mesh.NewPoint(-2, 0, 0), mesh.NewPoint(0, 3, 0)))
	v.Add(m)

	bbox := v.Bounds()
	assert.Equal(t, geometry.NewVector3(-2, 0, 0), bbox.Min)
	assert.Equal(t, geometry.NewVector3(1, 3, 1), bbox.Max)
}
