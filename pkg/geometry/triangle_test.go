package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// right triangle with sides 3, 4, 5
func rightTriangle() Triangle {
	return NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	assert.InDelta(t, 6.0, rightTriangle().Area(), 1e-10)
}

func TestTriangleCalculateNormal(t *testing.T) {
	normal := rightTriangle().CalculateNormal()
	assert.InDelta(t, 1.0, normal.Z, 1e-10)
}

func TestTriangleDegenerate(t *testing.T) {
	collinear := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 1, 1), NewVector3(2, 2, 2))
	assert.Zero(t, collinear.Area())
	assert.Equal(t, Vector3{}, collinear.CalculateNormal())
}
