package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonAreaMatchesTriangle(t *testing.T) {
	tri := rightTriangle()
	assert.InDelta(t, tri.Area(), PolygonArea([]Vector3{tri.V1, tri.V2, tri.V3}), 1e-10)
}

func TestPolygonAreaConcave(t *testing.T) {
	// U shape in the x/z plane, 3x3 square minus a 1x2 notch
	u := []Vector3{
		NewVector3(0, 5, 0), NewVector3(3, 5, 0), NewVector3(3, 5, 3),
		NewVector3(2, 5, 3), NewVector3(2, 5, 1), NewVector3(1, 5, 1),
		NewVector3(1, 5, 3), NewVector3(0, 5, 3),
	}
	assert.InDelta(t, 7.0, PolygonArea(u), 1e-10)

	// reversed winding
	reversed := make([]Vector3, len(u))
	for i, c := range u {
		reversed[len(u)-1-i] = c
	}
	assert.InDelta(t, 7.0, PolygonArea(reversed), 1e-10)
}

func TestPolygonAreaTooFewCorners(t *testing.T) {
	assert.Zero(t, PolygonArea([]Vector3{NewVector3(1, 0, 0), NewVector3(0, 1, 0)}))
}
