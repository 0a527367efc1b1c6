package render

import (
	"errors"

	"github.com/bgraf/trackposter/logging"
)

var ErrNothingToDraw = errors.New("no track points to draw")

// heatmapPasses are the glow layers drawn over all tracks, from the widest
// to the crisp line.
var heatmapPasses = []struct {
	width, opacity float64
}{
	{5.0, 0.1},
	{2.0, 0.2},
	{0.3, 1.0},
}

const specialStrokeWidth = 0.3

// fit maps projected coordinates into the target rectangle.
type fit struct {
	min              XY
	scale            float64
	offsetX, offsetY float64
}

// newFit scales the content uniformly such that it fits into the w x h
// rectangle at (offsetX, offsetY) and centers it. A box without extent in one
// dimension is scaled by the other one; a single point is not scaled.
func newFit(b BoundsXY, w, h, offsetX, offsetY float64) fit {
	dx, dy := b.Width(), b.Height()

	var scale float64
	switch {
	case dx == 0 && dy == 0:
		scale = 1
	case dx == 0:
		scale = h / dy
	case dy == 0:
		scale = w / dx
	case w/h <= dx/dy:
		scale = w / dx
	default:
		scale = h / dy
	}

	return fit{
		min:     b.Min,
		scale:   scale,
		offsetX: offsetX + 0.5*w - 0.5*scale*dx,
		offsetY: offsetY + 0.5*h - 0.5*scale*dy,
	}
}

func (f fit) apply(p XY) XY {
	return XY{
		X: f.offsetX + f.scale*(p.X-f.min.X),
		Y: f.offsetY + f.scale*(p.Y-f.min.Y),
	}
}

func (f fit) applyAll(lines [][]XY) [][]XY {
	scaled := make([][]XY, len(lines))
	for i, line := range lines {
		scaledLine := make([]XY, len(line))
		for j, p := range line {
			scaledLine[j] = f.apply(p)
		}
		scaled[i] = scaledLine
	}
	return scaled
}

// DrawHeatmap projects all tracks of the poster, fits them into the w x h
// rectangle at (offsetX, offsetY) and draws them as glowing lines. Tracks
// flagged as special get an additional line in the special color.
func DrawHeatmap(poster *Poster, canvas Canvas, w, h, offsetX, offsetY float64) error {
	var lines, specialLines [][]XY
	for _, track := range poster.Tracks {
		var trackXY [][]XY
		for _, polyline := range track.Polylines {
			trackXY = append(trackXY, ProjectPolyline(polyline))
		}

		lines = append(lines, trackXY...)
		if track.Special {
			specialLines = append(specialLines, trackXY...)
		}
	}

	bounds, ok := ComputeBoundsXY(lines)
	if !ok {
		return ErrNothingToDraw
	}

	f := newFit(bounds, w, h, offsetX, offsetY)
	logging.Debugf("heatmap: bounds=%+v scale=%f offset=(%f, %f)", bounds, f.scale, f.offsetX, f.offsetY)

	scaledLines := f.applyAll(lines)
	scaledSpecialLines := f.applyAll(specialLines)

	color := poster.Colors.Color(ColorTrack)
	colorSpecial := poster.Colors.Color(ColorSpecial)

	for _, pass := range heatmapPasses {
		stroke := Stroke{
			Color:   color,
			Opacity: pass.opacity,
			Width:   pass.width,
			Join:    LineRound,
			Cap:     LineRound,
		}
		for _, line := range scaledLines {
			canvas.Polyline(line, stroke)
		}
	}

	stroke := Stroke{
		Color:   colorSpecial,
		Opacity: 1,
		Width:   specialStrokeWidth,
		Join:    LineRound,
		Cap:     LineRound,
	}
	for _, line := range scaledSpecialLines {
		canvas.Polyline(line, stroke)
	}

	return nil
}
