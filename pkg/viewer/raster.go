package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle
const kappa = 0.5522847498

const labelSize = 10

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
)

func loadLabelFont() *truetype.Font {
	labelFontOnce.Do(func() {
		f, err := freetype.ParseFont(goregular.TTF)
		if err != nil {
			slog.Error("failed to parse label font", "error", err)
			return
		}
		labelFont = f
	})
	return labelFont
}

// ImageCanvas draws anti-aliased primitives into an RGBA image
type ImageCanvas struct {
	img     *image.RGBA
	ras     *vector.Rasterizer
	stroker *rasterx.Stroker
	text    *freetype.Context
}

// NewImageCanvas creates a canvas backed by a new width x height image
func NewImageCanvas(width, height int) *ImageCanvas {
	return NewImageCanvasFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewImageCanvasFor draws into an existing image whose bounds start at 0,0
func NewImageCanvasFor(img *image.RGBA) *ImageCanvas {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &ImageCanvas{
		img:     img,
		ras:     vector.NewRasterizer(width, height),
		stroker: rasterx.NewStroker(width, height, scanner),
	}
}

// Image returns the backing image
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the whole image with col
func (c *ImageCanvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillCircle fills a disc around the center of the given pixel
func (c *ImageCanvas) FillCircle(center image.Point, radius float64, col color.Color) {
	cx := float32(center.X) + 0.5
	cy := float32(center.Y) + 0.5
	r := float32(radius)
	k := float32(kappa) * r

	c.resetRasterizer()
	c.ras.MoveTo(cx+r, cy)
	c.ras.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	c.ras.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	c.ras.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	c.ras.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	c.ras.ClosePath()
	c.fill(col)
}

// FillPolygon fills the polygon through points in order
func (c *ImageCanvas) FillPolygon(points []image.Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	c.resetRasterizer()
	c.ras.MoveTo(float32(points[0].X)+0.5, float32(points[0].Y)+0.5)
	for _, p := range points[1:] {
		c.ras.LineTo(float32(p.X)+0.5, float32(p.Y)+0.5)
	}
	c.ras.ClosePath()
	c.fill(col)
}

// DrawLine strokes a butt-capped line of the given width
func (c *ImageCanvas) DrawLine(from, to image.Point, width float64, col color.Color) {
	w := fixed.Int26_6(width * 64)
	c.stroker.Clear()
	c.stroker.SetStroke(w, 4*w, rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Round)
	c.stroker.Start(rasterx.ToFixedP(float64(from.X)+0.5, float64(from.Y)+0.5))
	c.stroker.Line(rasterx.ToFixedP(float64(to.X)+0.5, float64(to.Y)+0.5))
	c.stroker.Stop(false)
	c.stroker.SetColor(col)
	c.stroker.Draw()
}

// DrawLabel writes text in the Go regular font
func (c *ImageCanvas) DrawLabel(at image.Point, text string, col color.Color) {
	if c.text == nil {
		f := loadLabelFont()
		if f == nil {
			return
		}
		c.text = freetype.NewContext()
		c.text.SetDPI(72)
		c.text.SetFont(f)
		c.text.SetFontSize(labelSize)
		c.text.SetClip(c.img.Bounds())
		c.text.SetDst(c.img)
	}
	c.text.SetSrc(image.NewUniform(col))
	if _, err := c.text.DrawString(text, freetype.Pt(at.X, at.Y)); err != nil {
		slog.Debug("failed to draw label", "text", text, "error", err)
	}
}

func (c *ImageCanvas) resetRasterizer() {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
}

func (c *ImageCanvas) fill(col color.Color) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}
