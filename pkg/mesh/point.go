package mesh

import "github.com/philipparndt/gowire/pkg/geometry"

// Point is a mutable position in 3D space. Points are compared by
// identity: two points with the same coordinates are different entities.
type Point struct {
	geometry.Vector3
	state
}

// NewPoint creates a new point
func NewPoint(x, y, z float64) *Point {
	return &Point{Vector3: geometry.NewVector3(x, y, z)}
}

// Position returns the current coordinates
func (p *Point) Position() geometry.Vector3 {
	return p.Vector3
}

// SetPosition moves the point. Meshes are not notified; request a
// repaint from the viewer after moving points.
func (p *Point) SetPosition(x, y, z float64) {
	p.Vector3 = geometry.NewVector3(x, y, z)
}

func (p *Point) String() string {
	return p.Vector3.String()
}
