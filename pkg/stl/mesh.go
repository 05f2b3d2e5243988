package stl

import (
	"fmt"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/philipparndt/gowire/pkg/mesh"
)

// MeshOptions control the conversion of a model into a mesh
type MeshOptions struct {
	Name         string
	EdgeColoring *mesh.Coloring
	FaceColoring *mesh.Coloring
	// Points adds every vertex as a mesh point so it is drawn and pickable
	Points bool
}

// ToMesh converts the triangle soup into a connected mesh. Equal vertices
// become one shared point. Every triangle becomes a face with its own
// three directed edges, and each undirected triangle side is added once
// to the mesh's edge list for drawing. Triangles without area are skipped.
func ToMesh(model *Model, opts MeshOptions) (*mesh.Mesh, error) {
	name := opts.Name
	if name == "" {
		name = model.Name
	}

	var (
		points   []*mesh.Point
		outlines []*mesh.Edge
		faces    []*mesh.Face
	)

	shared := make(map[geometry.Vector3]*mesh.Point)
	point := func(v geometry.Vector3) *mesh.Point {
		if p, ok := shared[v]; ok {
			return p
		}
		p := mesh.NewPoint(v.X, v.Y, v.Z)
		shared[v] = p
		points = append(points, p)
		return p
	}

	type side struct{ a, b *mesh.Point }
	sides := make(map[side]bool)

	for i, triangle := range model.Triangles {
		if triangle.Area() == 0 {
			continue
		}
		vertices := triangle.Vertices()
		corners := [3]*mesh.Point{point(vertices[0]), point(vertices[1]), point(vertices[2])}

		edges := make([]*mesh.Edge, 3)
		for j := range corners {
			head, tail := corners[j], corners[(j+1)%3]
			e := mesh.NewEdge(opts.EdgeColoring, head, tail)
			edges[j] = e
			if !sides[side{head, tail}] && !sides[side{tail, head}] {
				sides[side{head, tail}] = true
				outlines = append(outlines, e)
			}
		}

		face, err := mesh.NewFace(opts.FaceColoring, edges...)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		faces = append(faces, face)
	}

	m := mesh.New(name)
	if !opts.Points {
		points = nil
	}
	m.AddAll(points, outlines, faces)
	return m, nil
}
