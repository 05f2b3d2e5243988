package mesh

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns the four corners and the closed edge chain around them
func square() ([]*Point, []*Edge) {
	points := []*Point{
		NewPoint(0, 0, 0),
		NewPoint(1, 0, 0),
		NewPoint(1, 1, 0),
		NewPoint(0, 1, 0),
	}
	edges := make([]*Edge, len(points))
	for i := range points {
		edges[i] = NewEdge(nil, points[i], points[(i+1)%len(points)])
	}
	return points, edges
}

func assertClosedChain(t *testing.T, f *Face) {
	t.Helper()
	edges := f.Edges()
	require.GreaterOrEqual(t, len(edges), 3)
	for i, e := range edges {
		next := edges[(i+1)%len(edges)]
		assert.Same(t, e.Tail(), next.Head(), "edge %d does not chain into edge %d", i, (i+1)%len(edges))
	}
}

func TestNewFace(t *testing.T) {
	points, edges := square()

	f, err := NewFace(nil, edges...)
	require.NoError(t, err)

	assert.Equal(t, 4, f.Len())
	assertClosedChain(t, f)
	assert.Equal(t, points, f.Vertices())
	for _, e := range edges {
		assert.True(t, f.Contains(e))
	}
}

func TestNewFaceTooFewEdges(t *testing.T) {
	_, edges := square()

	f, err := NewFace(nil, edges[0], edges[1])
	assert.ErrorIs(t, err, ErrTooFewEdges)
	assert.Nil(t, f)
}

func TestNewFaceBrokenChain(t *testing.T) {
	_, edges := square()

	_, err := NewFace(nil, edges[0], edges[2], edges[1], edges[3])
	assert.ErrorIs(t, err, ErrBrokenChain)
}

func TestNewFaceOpenCycle(t *testing.T) {
	_, edges := square()

	_, err := NewFace(nil, edges[0], edges[1], edges[2])
	assert.ErrorIs(t, err, ErrOpenCycle)
}

func TestFaceChainUsesIdentity(t *testing.T) {
	a := NewPoint(0, 0, 0)
	b := NewPoint(1, 0, 0)
	bCopy := NewPoint(1, 0, 0)
	c := NewPoint(0, 1, 0)

	_, err := NewFace(nil,
		NewEdge(nil, a, b),
		NewEdge(nil, bCopy, c),
		NewEdge(nil, c, a),
	)
	assert.ErrorIs(t, err, ErrBrokenChain)
}

func TestFaceRemove(t *testing.T) {
	_, edges := square()
	f, err := NewFace(nil, edges...)
	require.NoError(t, err)

	require.NoError(t, f.Remove(edges[1]))
	assert.Equal(t, 3, f.Len())
	assert.False(t, f.Contains(edges[1]))

	err = f.Remove(edges[2])
	assert.ErrorIs(t, err, ErrTooFewEdges)
	assert.Equal(t, 3, f.Len(), "failed removal must not change the face")
	assert.True(t, f.Contains(edges[2]))
}

func TestFaceRemoveForeignEdge(t *testing.T) {
	_, edges := square()
	f, err := NewFace(nil, edges...)
	require.NoError(t, err)

	other := NewEdge(nil, NewPoint(5, 5, 5), NewPoint(6, 6, 6))
	assert.NoError(t, f.Remove(other))
	assert.Equal(t, 4, f.Len())
}

func TestFaceColor(t *testing.T) {
	_, edges := square()
	normal := color.RGBA{0, 255, 255, 255}
	selected := color.RGBA{191, 0, 0, 240}
	f, err := NewFace(NewColoring(normal, nil, selected), edges...)
	require.NoError(t, err)

	assert.Equal(t, normal, f.Color())
	f.SetFocused(true)
	assert.Equal(t, normal, f.Color())
	f.SetSelected(true)
	assert.Equal(t, selected, f.Color())

	f.SetColoring(nil)
	assert.Nil(t, f.Color())
}
