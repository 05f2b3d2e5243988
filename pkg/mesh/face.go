package mesh

import (
	"fmt"
	"image/color"
	"slices"
)

// Face is a filled polygon bounded by a closed chain of at least three
// edges, where each edge starts at the tail of the one before it.
type Face struct {
	state
	coloring *Coloring
	edges    []*Edge
	view     []*Edge
}

// NewFace creates a face from a closed edge chain. Nothing is created
// when the chain is shorter than three edges, broken, or not closed.
func NewFace(coloring *Coloring, edges ...*Edge) (*Face, error) {
	if len(edges) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewEdges, len(edges))
	}
	f := &Face{coloring: coloring}
	for i, e := range edges {
		if err := f.append(e); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	first, last := edges[0], edges[len(edges)-1]
	if last.tail != first.head {
		return nil, fmt.Errorf("%w: %v does not end at %v", ErrOpenCycle, last, first.head)
	}
	return f, nil
}

func (f *Face) append(e *Edge) error {
	if n := len(f.edges); n > 0 && f.edges[n-1].tail != e.head {
		return fmt.Errorf("%w: %v follows %v", ErrBrokenChain, e, f.edges[n-1])
	}
	f.edges = append(f.edges, e)
	f.view = nil
	return nil
}

// Remove excises an edge from the face. It fails without changing the
// face when fewer than three edges would remain. Removing an edge that
// is not part of the face does nothing.
func (f *Face) Remove(e *Edge) error {
	if !f.Contains(e) {
		return nil
	}
	if len(f.edges) <= 3 {
		return fmt.Errorf("%w: cannot remove %v from a face with %d edges", ErrTooFewEdges, e, len(f.edges))
	}
	f.excise(e)
	return nil
}

// excise drops e without the size check; callers have verified it.
func (f *Face) excise(edges ...*Edge) {
	f.edges = slices.DeleteFunc(f.edges, func(candidate *Edge) bool {
		return slices.Contains(edges, candidate)
	})
	f.view = nil
}

// Contains reports whether the face uses e (by identity)
func (f *Face) Contains(e *Edge) bool {
	return slices.Contains(f.edges, e)
}

// Len returns the number of edges
func (f *Face) Len() int {
	return len(f.edges)
}

// Edges returns the edges in cycle order. The returned slice is shared
// until the next mutation of the face and must not be modified.
func (f *Face) Edges() []*Edge {
	if f.view == nil {
		f.view = slices.Clone(f.edges)
	}
	return f.view
}

// Vertices returns the head of every edge in cycle order
func (f *Face) Vertices() []*Point {
	points := make([]*Point, len(f.edges))
	for i, e := range f.edges {
		points[i] = e.head
	}
	return points
}

// Coloring returns the coloring, possibly nil
func (f *Face) Coloring() *Coloring {
	return f.coloring
}

// SetColoring replaces the coloring
func (f *Face) SetColoring(coloring *Coloring) {
	f.coloring = coloring
}

// Color returns the color for the face's current state
func (f *Face) Color() color.Color {
	return f.coloring.Resolve(f.focused, f.selected)
}
