package stl

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/philipparndt/gowire/pkg/mesh"
)

func TestToMeshSharesVertices(t *testing.T) {
	model, err := Parse(strings.NewReader(tetrahedron))
	require.NoError(t, err)

	faceColoring := mesh.NewColoring(color.White, nil, nil)
	m, err := ToMesh(model, MeshOptions{FaceColoring: faceColoring, Points: true})
	require.NoError(t, err)

	assert.Equal(t, "tetra", m.Name)
	assert.Len(t, m.Points(), 4)
	assert.Len(t, m.Faces(), 4)
	// six undirected sides
	assert.Len(t, m.Edges(), 6)

	for _, f := range m.Faces() {
		assert.Equal(t, 3, f.Len())
		assert.Same(t, faceColoring, f.Coloring())
		for _, p := range f.Vertices() {
			assert.True(t, m.ContainsPoint(p))
		}
	}
}

func TestToMeshWithoutPoints(t *testing.T) {
	model := NewModel("tri")
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)))
	// degenerate
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 1, 0)))

	m, err := ToMesh(model, MeshOptions{Name: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", m.Name)
	assert.Empty(t, m.Points())
	assert.Len(t, m.Faces(), 1)
	assert.Len(t, m.Edges(), 3)
}

func TestToMeshRemovePointCascadesThroughFaces(t *testing.T) {
	model, err := Parse(strings.NewReader(tetrahedron))
	require.NoError(t, err)
	m, err := ToMesh(model, MeshOptions{Points: true})
	require.NoError(t, err)

	var origin *mesh.Point
	for _, p := range m.Points() {
		if p.Position() == (geometry.Vector3{}) {
			origin = p
		}
	}
	require.NotNil(t, origin)

	m.RemovePoint(origin)

	assert.Len(t, m.Points(), 3)
	assert.Len(t, m.Edges(), 3)
	require.Len(t, m.Faces(), 1)
	for _, p := range m.Faces()[0].Vertices() {
		assert.NotSame(t, origin, p)
	}
}
