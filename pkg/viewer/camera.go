package viewer

import (
	"math"

	"github.com/philipparndt/gowire/pkg/geometry"
)

// CameraSettings are the parameters of the projection
type CameraSettings struct {
	// Theta rotates around the vertical axis, Phi sets the elevation
	Theta, Phi float64
	// ViewAngleZ is a focal-length-like scale term
	ViewAngleZ float64
	// Screen pans the view with X and Y and zooms with Z
	Screen geometry.Vector3
	// WorldCenter is subtracted from every point before the transform
	WorldCenter geometry.Vector3
	// ModelScale is a fudge factor controlling distortion
	ModelScale int
}

// DefaultCameraSettings returns an oblique view on the origin
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		Theta:      -1.0,
		Phi:        3.35,
		ViewAngleZ: math.Pi,
		Screen:     geometry.NewVector3(0, 0, 50),
		ModelScale: 1000,
	}
}

// ScreenPoint is a projected point in pixels plus its signed depth.
// Depth > 0 is in front of the viewer.
type ScreenPoint struct {
	X, Y  int
	Depth float64
}

// Camera projects 3D points onto the screen
type Camera struct {
	settings CameraSettings
	defaults CameraSettings

	// cached for the view angle in settings
	cosTheta, sinTheta             float64
	cosPhi, sinPhi                 float64
	sinThetaSinPhi, cosThetaSinPhi float64
	sinThetaCosPhi, cosThetaCosPhi float64

	listeners map[int]func()
	nextID    int
}

// NewCamera creates a camera that starts at, and resets to, defaults
func NewCamera(defaults CameraSettings) *Camera {
	c := &Camera{
		settings:  defaults,
		defaults:  defaults,
		listeners: make(map[int]func()),
	}
	c.updateTrig()
	return c
}

// Subscribe registers fn to be called after every parameter change.
// The returned function removes the subscription.
func (c *Camera) Subscribe(fn func()) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *Camera) changed() {
	for _, fn := range c.listeners {
		fn()
	}
}

func (c *Camera) updateTrig() {
	c.cosTheta = math.Cos(c.settings.Theta)
	c.sinTheta = math.Sin(c.settings.Theta)
	c.cosPhi = math.Cos(c.settings.Phi)
	c.sinPhi = math.Sin(c.settings.Phi)
	c.sinThetaSinPhi = c.sinTheta * c.sinPhi
	c.cosThetaSinPhi = c.cosTheta * c.sinPhi
	c.sinThetaCosPhi = c.sinTheta * c.cosPhi
	c.cosThetaCosPhi = c.cosTheta * c.cosPhi
}

// Settings returns a copy of the current parameters
func (c *Camera) Settings() CameraSettings {
	return c.settings
}

// Defaults returns the parameters restored by Reset
func (c *Camera) Defaults() CameraSettings {
	return c.defaults
}

// SetDefaults replaces the parameters restored by Reset. The current
// view is not changed.
func (c *Camera) SetDefaults(defaults CameraSettings) {
	c.defaults = defaults
}

// Apply replaces all parameters at once
func (c *Camera) Apply(settings CameraSettings) {
	c.settings = settings
	c.updateTrig()
	c.changed()
}

// Reset restores the defaults with a single change notification
func (c *Camera) Reset() {
	c.Apply(c.defaults)
}

// ViewAngle returns theta, phi and the focal scale term
func (c *Camera) ViewAngle() (theta, phi, z float64) {
	return c.settings.Theta, c.settings.Phi, c.settings.ViewAngleZ
}

// SetViewAngle sets the rotation and focal scale term
func (c *Camera) SetViewAngle(theta, phi, z float64) {
	c.settings.Theta = theta
	c.settings.Phi = phi
	c.settings.ViewAngleZ = z
	c.updateTrig()
	c.changed()
}

// ScreenPosition returns the pan (X, Y) and zoom (Z) offset
func (c *Camera) ScreenPosition() geometry.Vector3 {
	return c.settings.Screen
}

// SetScreenPosition sets the pan and zoom offset. Z should be positive.
func (c *Camera) SetScreenPosition(position geometry.Vector3) {
	c.settings.Screen = position
	c.changed()
}

// SetScreenPositionZ changes only the zoom offset
func (c *Camera) SetScreenPositionZ(z float64) {
	c.settings.Screen.Z = z
	c.changed()
}

// WorldCenter returns the offset subtracted from every point
func (c *Camera) WorldCenter() geometry.Vector3 {
	return c.settings.WorldCenter
}

// SetWorldCenter sets the offset subtracted from every point
func (c *Camera) SetWorldCenter(center geometry.Vector3) {
	c.settings.WorldCenter = center
	c.changed()
}

// SetModelScale sets the distortion factor
func (c *Camera) SetModelScale(scale int) {
	c.settings.ModelScale = scale
	c.changed()
}

// Orbit rotates the view by a mouse drag delta in pixels
func (c *Camera) Orbit(dx, dy float64) {
	theta, phi, z := c.ViewAngle()
	c.SetViewAngle(theta-0.01*dx, phi+0.01*dy, z)
}

// Zoom moves the screen plane one step away from (out) or towards the scene
func (c *Camera) Zoom(out bool) {
	z := c.settings.Screen.Z
	if out {
		z *= 1.05
	} else {
		z /= 1.05
	}
	c.SetScreenPositionZ(z)
}

// Project maps a point onto the screen whose center is (cx, cy). Points
// at depth 0 produce extreme or undefined pixel coordinates; callers drop
// anything with Depth <= 0.
func (c *Camera) Project(cx, cy float64, p geometry.Vector3) ScreenPoint {
	s := &c.settings
	rel := p.Sub(s.WorldCenter)
	px, py, pz := rel.X, rel.Y, rel.Z

	x := s.Screen.X + px*c.cosTheta - py*c.sinTheta
	y := s.Screen.Y + px*c.sinThetaSinPhi + py*c.cosThetaSinPhi + pz*c.cosPhi
	z := s.Screen.Z + px*c.sinThetaCosPhi + py*c.cosThetaCosPhi - pz*c.sinPhi

	scale := float64(s.ModelScale) * s.ViewAngleZ / z
	return ScreenPoint{
		X:     int(math.Round(cx + scale*x)),
		Y:     int(math.Round(cy - scale*y)),
		Depth: z,
	}
}

// FitSettings returns settings based on current that center the world on
// bbox and move the screen plane back until the whole box lies in front
// of the viewer and spans roughly two thirds of the smaller viewport side.
func FitSettings(current CameraSettings, bbox geometry.BoundingBox, width, height int) CameraSettings {
	fitted := current
	fitted.WorldCenter = bbox.Center()
	radius := bbox.Diagonal() / 2
	if radius == 0 || width <= 0 || height <= 0 {
		return fitted
	}

	target := float64(min(width, height)) / 3
	z := float64(fitted.ModelScale) * math.Abs(fitted.ViewAngleZ) * radius / target
	// keep the nearest corner well in front of the screen plane
	z = math.Max(z, 2*radius)
	fitted.Screen = geometry.NewVector3(0, 0, z)
	return fitted
}
