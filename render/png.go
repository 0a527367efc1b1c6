package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultPixelsPerUnit renders a 200mm wide poster at 1600 pixels.
const DefaultPixelsPerUnit = 8.0

var (
	regularFontOnce sync.Once
	regularFont     *truetype.Font
	regularFontErr  error
)

func loadRegularFont() (*truetype.Font, error) {
	regularFontOnce.Do(func() {
		regularFont, regularFontErr = truetype.Parse(goregular.TTF)
	})
	return regularFont, regularFontErr
}

// PNGCanvas rasterizes drawing primitives. Coordinates are multiplied by
// the pixels-per-unit factor.
type PNGCanvas struct {
	dc    *gg.Context
	scale float64
	font  *truetype.Font
}

func NewPNGCanvas(width, height, pixelsPerUnit float64) (*PNGCanvas, error) {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = DefaultPixelsPerUnit
	}

	w := int(width * pixelsPerUnit)
	h := int(height * pixelsPerUnit)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", w, h)
	}

	f, err := loadRegularFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	return &PNGCanvas{
		dc:    gg.NewContext(w, h),
		scale: pixelsPerUnit,
		font:  f,
	}, nil
}

func lineCap(s string) gg.LineCap {
	switch s {
	case LineRound:
		return gg.LineCapRound
	default:
		return gg.LineCapButt
	}
}

func lineJoin(s string) gg.LineJoin {
	switch s {
	case LineRound:
		return gg.LineJoinRound
	default:
		return gg.LineJoinBevel
	}
}

func (c *PNGCanvas) Polyline(points []XY, stroke Stroke) {
	if len(points) == 0 {
		return
	}

	dc := c.dc
	dc.NewSubPath()
	dc.MoveTo(points[0].X*c.scale, points[0].Y*c.scale)
	for _, p := range points[1:] {
		dc.LineTo(p.X*c.scale, p.Y*c.scale)
	}

	dc.SetRGBA(stroke.Color.R, stroke.Color.G, stroke.Color.B, stroke.Opacity)
	dc.SetLineWidth(stroke.Width * c.scale)
	dc.SetLineCap(lineCap(stroke.Cap))
	dc.SetLineJoin(lineJoin(stroke.Join))
	dc.Stroke()
}

func (c *PNGCanvas) Rect(x, y, width, height float64, fill colorful.Color) {
	c.dc.DrawRectangle(x*c.scale, y*c.scale, width*c.scale, height*c.scale)
	c.dc.SetColor(fill)
	c.dc.Fill()
}

func (c *PNGCanvas) Text(x, y float64, text string, style TextStyle) {
	c.dc.SetFontFace(truetype.NewFace(c.font, &truetype.Options{Size: style.Size * c.scale}))
	c.dc.SetColor(style.Color)

	ax := 0.0
	switch style.Anchor {
	case AnchorMiddle:
		ax = 0.5
	case AnchorEnd:
		ax = 1
	}

	c.dc.DrawStringAnchored(text, x*c.scale, y*c.scale, ax, 0)
}

func (c *PNGCanvas) Bounds() (width, height int) {
	return c.dc.Width(), c.dc.Height()
}

// WriteTo encodes the raster as PNG.
func (c *PNGCanvas) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := c.dc.EncodePNG(cw)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
