package app

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const labelFontSize = 14

// screenCanvas draws viewer primitives straight into the raylib frame
type screenCanvas struct {
	font rl.Font
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func toVector(p image.Point) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

func (c *screenCanvas) Clear(col color.Color) {
	rl.ClearBackground(toRGBA(col))
}

func (c *screenCanvas) FillCircle(center image.Point, radius float64, col color.Color) {
	rl.DrawCircleV(toVector(center), float32(radius), toRGBA(col))
}

func (c *screenCanvas) DrawLine(from, to image.Point, width float64, col color.Color) {
	rl.DrawLineEx(toVector(from), toVector(to), float32(width), toRGBA(col))
}

// FillPolygon draws a triangle fan around the first corner, which is
// exact for convex faces
func (c *screenCanvas) FillPolygon(points []image.Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	fan := make([]rl.Vector2, len(points))
	for i, p := range points {
		fan[i] = toVector(p)
	}
	rl.DrawTriangleFan(fan, toRGBA(col))
}

func (c *screenCanvas) DrawLabel(at image.Point, text string, col color.Color) {
	// the label position is the text baseline
	pos := rl.Vector2{X: float32(at.X), Y: float32(at.Y - labelFontSize)}
	rl.DrawTextEx(c.font, text, pos, labelFontSize, 1, toRGBA(col))
}
