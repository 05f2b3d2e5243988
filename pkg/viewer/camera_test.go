package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/gowire/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectOriginLandsOnViewportCenter(t *testing.T) {
	c := NewCamera(DefaultCameraSettings())
	sp := c.Project(320, 240, geometry.NewVector3(0, 0, 0))
	assert.Equal(t, 320, sp.X)
	assert.Equal(t, 240, sp.Y)
	assert.Equal(t, 50.0, sp.Depth)
}

func TestProjectFrontCamera(t *testing.T) {
	c := NewCamera(frontCamera())
	sp := c.Project(50, 50, geometry.NewVector3(8, 4, -2))
	assert.Equal(t, 52, sp.X)
	// screen y grows downwards
	assert.Equal(t, 51, sp.Y)
	assert.Equal(t, 4.0, sp.Depth)
}

func TestProjectSubtractsWorldCenter(t *testing.T) {
	settings := frontCamera()
	settings.WorldCenter = geometry.NewVector3(1, 1, 1)
	c := NewCamera(settings)
	sp := c.Project(0, 0, geometry.NewVector3(9, 5, 1))
	assert.Equal(t, 2, sp.X)
	assert.Equal(t, 0, sp.Y)
	assert.Equal(t, 4.0, sp.Depth)
}

func TestProjectRotation(t *testing.T) {
	settings := frontCamera()
	settings.Theta = math.Pi / 2
	c := NewCamera(settings)
	// a quarter turn moves the x axis into the view direction
	sp := c.Project(0, 0, geometry.NewVector3(2, 0, 0))
	assert.InDelta(t, 2.0, sp.Depth, 1e-9)
	assert.Equal(t, 0, sp.X)
}

func TestTrigCacheFollowsViewAngle(t *testing.T) {
	c := NewCamera(DefaultCameraSettings())
	c.SetViewAngle(0.3, 1.2, 2)

	fresh := NewCamera(c.Settings())
	p := geometry.NewVector3(1, -2, 3)
	assert.Equal(t, fresh.Project(100, 100, p), c.Project(100, 100, p))
}

func TestResetIsIdempotent(t *testing.T) {
	c := NewCamera(DefaultCameraSettings())
	c.Orbit(40, -15)
	c.Zoom(true)
	c.SetWorldCenter(geometry.NewVector3(3, 2, 1))

	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 2, 3),
		geometry.NewVector3(-5, 4, -1),
	}
	c.Reset()
	first := c.Settings()
	var projected []ScreenPoint
	for _, p := range points {
		projected = append(projected, c.Project(200, 100, p))
	}

	c.Reset()
	assert.Equal(t, first, c.Settings())
	assert.Equal(t, DefaultCameraSettings(), c.Settings())
	for i, p := range points {
		assert.Equal(t, projected[i], c.Project(200, 100, p))
	}
}

func TestResetNotifiesOnce(t *testing.T) {
	c := NewCamera(DefaultCameraSettings())
	calls := 0
	c.Subscribe(func() { calls++ })
	c.Reset()
	assert.Equal(t, 1, calls)
}

func TestOrbitAndZoom(t *testing.T) {
	c := NewCamera(DefaultCameraSettings())
	c.Orbit(100, 50)
	theta, phi, z := c.ViewAngle()
	assert.InDelta(t, -2.0, theta, 1e-12)
	assert.InDelta(t, 3.85, phi, 1e-12)
	assert.Equal(t, math.Pi, z)

	c.Zoom(true)
	assert.InDelta(t, 52.5, c.ScreenPosition().Z, 1e-12)
	c.Zoom(false)
	assert.InDelta(t, 50.0, c.ScreenPosition().Z, 1e-12)
}

func TestSubscriptionCancel(t *testing.T) {
	c := NewCamera(DefaultCameraSettings())
	calls := 0
	cancel := c.Subscribe(func() { calls++ })
	c.SetModelScale(500)
	cancel()
	c.SetScreenPosition(geometry.NewVector3(1, 1, 10))
	assert.Equal(t, 1, calls)
}

func TestFitSettingsKeepsBoxInFrontAndOnScreen(t *testing.T) {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(9, 9, 9))
	bbox.Extend(geometry.NewVector3(11, 11, 11))

	fitted := FitSettings(DefaultCameraSettings(), bbox, 300, 300)
	assert.Equal(t, geometry.NewVector3(10, 10, 10), fitted.WorldCenter)
	assert.Equal(t, DefaultCameraSettings().Theta, fitted.Theta)

	c := NewCamera(fitted)
	for _, x := range []float64{9, 11} {
		for _, y := range []float64{9, 11} {
			for _, z := range []float64{9, 11} {
				sp := c.Project(150, 150, geometry.NewVector3(x, y, z))
				require.Greater(t, sp.Depth, 0.0)
				assert.GreaterOrEqual(t, sp.X, 0)
				assert.LessOrEqual(t, sp.X, 300)
				assert.GreaterOrEqual(t, sp.Y, 0)
				assert.LessOrEqual(t, sp.Y, 300)
			}
		}
	}
}

func TestFitSettingsEmptyBox(t *testing.T) {
	current := DefaultCameraSettings()
	fitted := FitSettings(current, geometry.NewBoundingBox(), 300, 300)
	assert.Equal(t, current, fitted)
}
