package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SVGCanvas collects drawing primitives as SVG elements. Coordinates are
// interpreted as millimeters of the final document.
type SVGCanvas struct {
	Width, Height float64
	elements      bytes.Buffer
}

func NewSVGCanvas(width, height float64) *SVGCanvas {
	return &SVGCanvas{Width: width, Height: height}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatCoord(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func (c *SVGCanvas) Polyline(points []XY, stroke Stroke) {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = formatCoord(p.X) + "," + formatCoord(p.Y)
	}

	fmt.Fprintf(&c.elements, `<polyline points="%s" fill="none" stroke="%s"`, strings.Join(coords, " "), stroke.Color.Hex())
	if stroke.Opacity < 1 {
		fmt.Fprintf(&c.elements, ` stroke-opacity="%s"`, formatFloat(stroke.Opacity))
	}
	fmt.Fprintf(&c.elements, ` stroke-width="%s"`, formatFloat(stroke.Width))
	if stroke.Join != "" {
		fmt.Fprintf(&c.elements, ` stroke-linejoin="%s"`, stroke.Join)
	}
	if stroke.Cap != "" {
		fmt.Fprintf(&c.elements, ` stroke-linecap="%s"`, stroke.Cap)
	}
	c.elements.WriteString(" />\n")
}

func (c *SVGCanvas) Rect(x, y, width, height float64, fill colorful.Color) {
	fmt.Fprintf(&c.elements, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" />`+"\n",
		formatFloat(x), formatFloat(y), formatFloat(width), formatFloat(height), fill.Hex())
}

func (c *SVGCanvas) Text(x, y float64, text string, style TextStyle) {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(text))

	anchor := style.Anchor
	if anchor == "" {
		anchor = AnchorStart
	}

	fmt.Fprintf(&c.elements, `<text x="%s" y="%s" fill="%s" font-size="%spx" font-family="Arial" text-anchor="%s">%s</text>`+"\n",
		formatFloat(x), formatFloat(y), style.Color.Hex(), formatFloat(style.Size), anchor, escaped.String())
}

// WriteTo writes the complete SVG document.
func (c *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="utf-8" ?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		formatFloat(c.Width), formatFloat(c.Height), formatFloat(c.Width), formatFloat(c.Height))
	buf.Write(c.elements.Bytes())
	buf.WriteString("</svg>\n")

	return buf.WriteTo(w)
}
