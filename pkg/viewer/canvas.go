package viewer

import (
	"image"
	"image/color"
)

// Canvas receives the drawing calls of a render pass, farthest
// primitive first. Coordinates are pixels with the origin top left.
type Canvas interface {
	Clear(c color.Color)
	// FillCircle fills a disc centered on the pixel at center
	FillCircle(center image.Point, radius float64, c color.Color)
	DrawLine(from, to image.Point, width float64, c color.Color)
	FillPolygon(points []image.Point, c color.Color)
	// DrawLabel writes text with its baseline starting at at
	DrawLabel(at image.Point, text string, c color.Color)
}
