package render

import (
	"math"

	"github.com/bgraf/trackposter/data/geotrack"
)

type XY struct {
	X, Y float64
}

// maxLatitude is where the projection reaches the top of the square map.
const maxLatitude = 85.05112877980659

// Project maps a geographic coordinate in degrees to the plane. x grows
// eastwards from 0 at 180°W, y grows southwards with 0.5 at the equator.
// Latitudes beyond the poles of the map are clamped.
func Project(p geotrack.LatLon) XY {
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, p.Lat))
	return XY{
		X: p.Lon/180 + 1,
		Y: 0.5 - math.Log(math.Tan(math.Pi/4*(1+lat/90)))/math.Pi,
	}
}

func ProjectPolyline(line geotrack.Polyline) []XY {
	xy := make([]XY, len(line))
	for i, p := range line {
		xy[i] = Project(p)
	}
	return xy
}

type BoundsXY struct {
	Min, Max XY
}

func (b BoundsXY) Width() float64 {
	return b.Max.X - b.Min.X
}

func (b BoundsXY) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// ComputeBoundsXY returns the bounding box of all points. ok is false if
// there are no points.
func ComputeBoundsXY(lines [][]XY) (b BoundsXY, ok bool) {
	for _, line := range lines {
		for _, p := range line {
			if !ok {
				b = BoundsXY{Min: p, Max: p}
				ok = true
				continue
			}

			b.Min.X = math.Min(b.Min.X, p.X)
			b.Min.Y = math.Min(b.Min.Y, p.Y)
			b.Max.X = math.Max(b.Max.X, p.X)
			b.Max.Y = math.Max(b.Max.Y, p.Y)
		}
	}

	return
}
