package render

import "github.com/lucasb-eyer/go-colorful"

const (
	LineRound = "round"
	LineButt  = "butt"
)

type Stroke struct {
	Color   colorful.Color
	Opacity float64
	Width   float64
	Join    string
	Cap     string
}

type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

type TextStyle struct {
	Color  colorful.Color
	Size   float64
	Anchor TextAnchor
}

// Canvas accepts unfilled polylines.
type Canvas interface {
	Polyline(points []XY, stroke Stroke)
}

// Surface is a canvas that can also paint the poster's background and
// labels.
type Surface interface {
	Canvas
	Rect(x, y, width, height float64, fill colorful.Color)
	Text(x, y float64, text string, style TextStyle)
}
