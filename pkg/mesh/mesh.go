package mesh

import (
	"slices"
)

// Mesh is a named collection of points, edges and faces. Entities may
// be shared between meshes. A Mesh is not safe for concurrent use.
type Mesh struct {
	Name string

	points []*Point
	edges  []*Edge
	faces  []*Face

	pointView []*Point
	edgeView  []*Edge
	faceView  []*Face

	visible    bool
	focusable  bool
	selectable bool

	listeners map[int]func(*Mesh)
	nextID    int
}

// New creates an empty mesh that is visible, focusable and selectable
func New(name string) *Mesh {
	return &Mesh{
		Name:       name,
		visible:    true,
		focusable:  true,
		selectable: true,
		listeners:  make(map[int]func(*Mesh)),
	}
}

// Visible reports whether the mesh is rendered at all
func (m *Mesh) Visible() bool { return m.visible }

// SetVisible shows or hides the mesh
func (m *Mesh) SetVisible(visible bool) {
	if m.visible != visible {
		m.visible = visible
		m.notify()
	}
}

// Focusable reports whether the mesh's entities can receive pick focus.
// A non-focusable mesh still hides whatever lies behind it from picking.
func (m *Mesh) Focusable() bool { return m.focusable }

// SetFocusable sets the focusable flag
func (m *Mesh) SetFocusable(focusable bool) { m.focusable = focusable }

// Selectable is advisory and not consulted by the viewer
func (m *Mesh) Selectable() bool { return m.selectable }

// SetSelectable sets the selectable flag
func (m *Mesh) SetSelectable(selectable bool) { m.selectable = selectable }

// Subscribe registers fn to be called after every change to the mesh.
// The returned function removes the subscription.
func (m *Mesh) Subscribe(fn func(*Mesh)) (cancel func()) {
	if m.listeners == nil {
		m.listeners = make(map[int]func(*Mesh))
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		delete(m.listeners, id)
	}
}

func (m *Mesh) notify() {
	for _, fn := range m.listeners {
		fn(m)
	}
}

// AddPoint adds a point. Adding a member again does nothing.
func (m *Mesh) AddPoint(p *Point) {
	if slices.Contains(m.points, p) {
		return
	}
	m.points = append(m.points, p)
	m.pointView = nil
	m.notify()
}

// AddEdge adds an edge. Its points do not have to be members.
func (m *Mesh) AddEdge(e *Edge) {
	if slices.Contains(m.edges, e) {
		return
	}
	m.edges = append(m.edges, e)
	m.edgeView = nil
	m.notify()
}

// AddFace adds a face. Its edges do not have to be members.
func (m *Mesh) AddFace(f *Face) {
	if slices.Contains(m.faces, f) {
		return
	}
	m.faces = append(m.faces, f)
	m.faceView = nil
	m.notify()
}

// AddAll adds many entities with a single change notification. Members
// and duplicates within the arguments are skipped.
func (m *Mesh) AddAll(points []*Point, edges []*Edge, faces []*Face) {
	changed := false
	if addNew(&m.points, points) {
		m.pointView = nil
		changed = true
	}
	if addNew(&m.edges, edges) {
		m.edgeView = nil
		changed = true
	}
	if addNew(&m.faces, faces) {
		m.faceView = nil
		changed = true
	}
	if changed {
		m.notify()
	}
}

func addNew[T comparable](members *[]T, items []T) bool {
	if len(items) == 0 {
		return false
	}
	seen := make(map[T]bool, len(*members)+len(items))
	for _, member := range *members {
		seen[member] = true
	}
	before := len(*members)
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			*members = append(*members, item)
		}
	}
	return len(*members) != before
}

// RemovePoint removes p together with every edge that references it,
// whether or not p itself is a member. Faces using a removed edge shrink,
// or are removed when fewer than three edges would remain.
func (m *Mesh) RemovePoint(p *Point) {
	changed := m.dropPoint(p)

	var doomed []*Edge
	for _, e := range m.edges {
		if e.References(p) {
			doomed = append(doomed, e)
		}
	}
	// face edges need not be members
	for _, f := range m.faces {
		for _, e := range f.Edges() {
			if e.References(p) && !slices.Contains(doomed, e) {
				doomed = append(doomed, e)
			}
		}
	}
	if m.removeEdges(doomed) {
		changed = true
	}
	if changed {
		m.notify()
	}
}

// RemoveEdge removes e and applies the face cascade of RemovePoint
func (m *Mesh) RemoveEdge(e *Edge) {
	if m.removeEdges([]*Edge{e}) {
		m.notify()
	}
}

// RemoveFace removes a face; its edges stay in the mesh
func (m *Mesh) RemoveFace(f *Face) {
	before := len(m.faces)
	m.faces = slices.DeleteFunc(m.faces, func(candidate *Face) bool { return candidate == f })
	if len(m.faces) != before {
		m.faceView = nil
		m.notify()
	}
}

func (m *Mesh) dropPoint(p *Point) bool {
	before := len(m.points)
	m.points = slices.DeleteFunc(m.points, func(candidate *Point) bool { return candidate == p })
	if len(m.points) == before {
		return false
	}
	m.pointView = nil
	return true
}

// removeEdges plans the face cascade for the doomed edges before touching
// anything, then applies it. It reports whether the mesh changed.
func (m *Mesh) removeEdges(doomed []*Edge) bool {
	if len(doomed) == 0 {
		return false
	}

	type shrink struct {
		face  *Face
		edges []*Edge
	}
	var shrinks []shrink
	var destroyed []*Face
	for _, f := range m.faces {
		var hits []*Edge
		for _, e := range doomed {
			if f.Contains(e) {
				hits = append(hits, e)
			}
		}
		switch {
		case len(hits) == 0:
		case f.Len()-len(hits) < 3:
			destroyed = append(destroyed, f)
		default:
			shrinks = append(shrinks, shrink{face: f, edges: hits})
		}
	}

	changed := false
	before := len(m.edges)
	m.edges = slices.DeleteFunc(m.edges, func(candidate *Edge) bool {
		return slices.Contains(doomed, candidate)
	})
	if len(m.edges) != before {
		m.edgeView = nil
		changed = true
	}
	for _, s := range shrinks {
		s.face.excise(s.edges...)
		changed = true
	}
	if len(destroyed) > 0 {
		m.faces = slices.DeleteFunc(m.faces, func(candidate *Face) bool {
			return slices.Contains(destroyed, candidate)
		})
		m.faceView = nil
		changed = true
	}
	return changed
}

// Points returns the member points. The slice is shared until the next
// mutation and must not be modified.
func (m *Mesh) Points() []*Point {
	if m.pointView == nil {
		m.pointView = slices.Clone(m.points)
	}
	return m.pointView
}

// Edges returns the member edges. The slice is shared until the next
// mutation and must not be modified.
func (m *Mesh) Edges() []*Edge {
	if m.edgeView == nil {
		m.edgeView = slices.Clone(m.edges)
	}
	return m.edgeView
}

// Faces returns the member faces. The slice is shared until the next
// mutation and must not be modified.
func (m *Mesh) Faces() []*Face {
	if m.faceView == nil {
		m.faceView = slices.Clone(m.faces)
	}
	return m.faceView
}

// ContainsPoint reports membership by identity
func (m *Mesh) ContainsPoint(p *Point) bool { return slices.Contains(m.points, p) }

// ContainsEdge reports membership by identity
func (m *Mesh) ContainsEdge(e *Edge) bool { return slices.Contains(m.edges, e) }

// ContainsFace reports membership by identity
func (m *Mesh) ContainsFace(f *Face) bool { return slices.Contains(m.faces, f) }
