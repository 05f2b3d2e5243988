// Package analysis computes statistics over the meshes of a scene.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/philipparndt/gowire/pkg/mesh"
)

// MeshStats counts the members of one mesh
type MeshStats struct {
	Name      string
	Points    int
	Edges     int
	Faces     int
	Visible   bool
	Focusable bool
}

// EdgeInfo is an edge with its length and the first mesh listing it
type EdgeInfo struct {
	Mesh   string
	Edge   *mesh.Edge
	Length float64
}

// Result holds the statistics of a set of meshes. Entities shared by
// several meshes are counted once in the totals. Volume is that of the
// bounding box; SurfaceArea sums the face areas.
type Result struct {
	Meshes        []MeshStats
	Points        int
	Edges         int
	Faces         int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// Analyze collects statistics for meshes. The bounding box covers every
// point a mesh references, directly or through its edges and faces.
func Analyze(meshes []*mesh.Mesh) *Result {
	result := &Result{
		BoundingBox: geometry.NewBoundingBox(),
		AllEdges:    make([]EdgeInfo, 0),
	}

	points := make(map[*mesh.Point]bool)
	edges := make(map[*mesh.Edge]bool)
	faces := make(map[*mesh.Face]bool)
	extend := func(p *mesh.Point) {
		result.BoundingBox.Extend(p.Position())
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, m := range meshes {
		result.Meshes = append(result.Meshes, MeshStats{
			Name:      m.Name,
			Points:    len(m.Points()),
			Edges:     len(m.Edges()),
			Faces:     len(m.Faces()),
			Visible:   m.Visible(),
			Focusable: m.Focusable(),
		})

		for _, p := range m.Points() {
			points[p] = true
			extend(p)
		}
		for _, e := range m.Edges() {
			extend(e.Head())
			extend(e.Tail())
			if edges[e] {
				continue
			}
			edges[e] = true

			length := e.Head().Position().Distance(e.Tail().Position())
			result.AllEdges = append(result.AllEdges, EdgeInfo{Mesh: m.Name, Edge: e, Length: length})
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
		for _, f := range m.Faces() {
			corners := make([]geometry.Vector3, 0, f.Len())
			for _, p := range f.Vertices() {
				extend(p)
				corners = append(corners, p.Position())
			}
			if faces[f] {
				continue
			}
			faces[f] = true
			result.SurfaceArea += geometry.PolygonArea(corners)
		}
	}

	result.Points = len(points)
	result.Edges = len(edges)
	result.Faces = len(faces)
	result.Dimensions = result.BoundingBox.Size()
	result.Volume = result.BoundingBox.Volume()
	if n := len(result.AllEdges); n > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(n)
	}
	return result
}

// FindLongestEdges returns the count longest edges
func FindLongestEdges(result *Result, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the count shortest edges
func FindShortestEdges(result *Result, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *Result, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestPoint returns the mesh point closest to position, or nil
// if the meshes have no points
func FindNearestPoint(meshes []*mesh.Mesh, position geometry.Vector3) (*mesh.Point, float64) {
	var nearest *mesh.Point
	minDistance := math.MaxFloat64

	for _, m := range meshes {
		for _, p := range m.Points() {
			distance := position.Distance(p.Position())
			if distance < minDistance {
				minDistance = distance
				nearest = p
			}
		}
	}
	return nearest, minDistance
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
