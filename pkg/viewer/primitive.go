package viewer

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gowire/pkg/mesh"
)

// Kind tells which entity a primitive or pick target refers to
type Kind int

const (
	KindPoint Kind = iota
	KindEdge
	KindFace
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pick tolerances in pixels
const (
	edgeHitDistance = 5.0
	pointHitBox     = 6
)

// Target names a mesh entity under the cursor. Exactly one of Point,
// Edge and Face is set, matching Kind.
type Target struct {
	Mesh  *mesh.Mesh
	Kind  Kind
	Point *mesh.Point
	Edge  *mesh.Edge
	Face  *mesh.Face
}

// Entity returns the focused/selected state holder of the target
func (t Target) Entity() mesh.Interactive {
	switch t.Kind {
	case KindPoint:
		return t.Point
	case KindEdge:
		return t.Edge
	default:
		return t.Face
	}
}

// Same reports whether both targets refer to the same entity
func (t Target) Same(other Target) bool {
	return t.Kind == other.Kind && t.Point == other.Point && t.Edge == other.Edge && t.Face == other.Face
}

func (t Target) String() string {
	name := ""
	if t.Mesh != nil {
		name = t.Mesh.Name
	}
	switch t.Kind {
	case KindPoint:
		return fmt.Sprintf("%s point %v", name, t.Point)
	case KindEdge:
		return fmt.Sprintf("%s edge %v", name, t.Edge)
	default:
		return fmt.Sprintf("%s face with %d edges", name, t.Face.Len())
	}
}

// Primitive is a projected point, edge or face together with its
// representative depth, as collected by one render pass.
type Primitive struct {
	Target
	// Vertices holds 1 point, 2 edge ends, or the face corners in cycle order
	Vertices []ScreenPoint
	Depth    float64
}

func newPrimitive(target Target, vertices []ScreenPoint) Primitive {
	sum := 0.0
	for _, v := range vertices {
		sum += v.Depth
	}
	return Primitive{
		Target:   target,
		Vertices: vertices,
		Depth:    sum / float64(len(vertices)),
	}
}

// sortBackToFront orders primitives farthest first
func sortBackToFront(prims []Primitive) {
	sort.Slice(prims, func(i, j int) bool {
		return prims[i].Depth > prims[j].Depth
	})
}

// HitTest reports whether the screen position (x, y) lies on the primitive
func (p Primitive) HitTest(x, y int) bool {
	switch p.Kind {
	case KindFace:
		return polygonContains(p.Vertices, x, y)
	case KindEdge:
		return segmentNear(p.Vertices[0], p.Vertices[1], x, y)
	default:
		return pointNear(p.Vertices[0], x, y)
	}
}

// polygonContains is the even-odd rule: count how often a horizontal ray
// from (x, y) crosses the polygon outline.
func polygonContains(vertices []ScreenPoint, x, y int) bool {
	inside := false
	prev := vertices[len(vertices)-1]
	fx, fy := float64(x), float64(y)
	for _, v := range vertices {
		if (prev.Y <= y && y < v.Y) || (v.Y <= y && y < prev.Y) {
			x0, y0 := float64(prev.X), float64(prev.Y)
			x1, y1 := float64(v.X), float64(v.Y)
			// exact intercept; integer division would shift boundary pixels
			if fx < (x0-x1)*(fy-y1)/(y0-y1)+x1 {
				inside = !inside
			}
		}
		prev = v
	}
	return inside
}

// segmentNear checks the distance from (x, y) to the foot of its
// perpendicular on the segment. Feet outside the segment never hit.
func segmentNear(head, tail ScreenPoint, x, y int) bool {
	dx := float64(tail.X - head.X)
	dy := float64(tail.Y - head.Y)
	length2 := dx*dx + dy*dy
	if length2 == 0 {
		return false
	}
	u := (dx*float64(x-head.X) + dy*float64(y-head.Y)) / length2
	if u < 0 || u > 1 {
		return false
	}
	footX := float64(head.X) + u*dx
	footY := float64(head.Y) + u*dy
	return math.Hypot(footX-float64(x), footY-float64(y)) <= edgeHitDistance
}

func pointNear(p ScreenPoint, x, y int) bool {
	return abs(p.X-x) < pointHitBox && abs(p.Y-y) < pointHitBox
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
