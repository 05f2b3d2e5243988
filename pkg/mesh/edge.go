package mesh

import (
	"fmt"
	"image/color"
)

// Edge is a line segment between two points. The points are shared with
// other edges and faces; the edge does not own them.
type Edge struct {
	state
	head     *Point
	tail     *Point
	coloring *Coloring
}

// NewEdge creates an edge from head to tail. coloring may be nil, in
// which case the edge takes part in faces but is never drawn.
func NewEdge(coloring *Coloring, head, tail *Point) *Edge {
	return &Edge{
		head:     head,
		tail:     tail,
		coloring: coloring,
	}
}

// Head returns the start point
func (e *Edge) Head() *Point {
	return e.head
}

// Tail returns the end point
func (e *Edge) Tail() *Point {
	return e.tail
}

// Coloring returns the coloring, possibly nil
func (e *Edge) Coloring() *Coloring {
	return e.coloring
}

// SetColoring replaces the coloring
func (e *Edge) SetColoring(coloring *Coloring) {
	e.coloring = coloring
}

// References reports whether p is one of the edge's end points
func (e *Edge) References(p *Point) bool {
	return e.head == p || e.tail == p
}

// Color returns the color for the edge's current state
func (e *Edge) Color() color.Color {
	return e.coloring.Resolve(e.focused, e.selected)
}

func (e *Edge) String() string {
	return fmt.Sprintf("%v->%v", e.head, e.tail)
}
