package geotrack

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/bgraf/trackposter/option"
	"github.com/tkrajina/gpxgo/gpx"
)

func loadGPXTrack(trackFilePath string, opts LoadOptions) (*Track, error) {
	gpxData, err := gpx.ParseFile(trackFilePath)
	if err != nil {
		return nil, fmt.Errorf("read GPX file: %w", err)
	}

	return trackFromGPX(filepath.Base(trackFilePath), gpxData, opts)
}

// trackFromGPX extracts the summary and the polylines of gpxData. The document
// is simplified in place.
func trackFromGPX(fileName string, gpxData *gpx.GPX, opts LoadOptions) (*Track, error) {
	t := &Track{FileNames: []string{fileName}}

	start, end := timeBounds(gpxData)
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingTimeBounds
	}
	t.StartTime = start.UTC().Truncate(time.Second)
	t.EndTime = end.UTC().Truncate(time.Second)

	if b, ok := pointBounds(gpxData); ok {
		t.Bounds = option.Some(b)
	}

	t.Length = gpxData.Length2D()
	if t.Length == 0 {
		return nil, ErrEmptyTrack
	}

	if opts.SimplifyTolerance > 0 {
		gpxData.SimplifyTracks(opts.SimplifyTolerance)
	}

	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			if len(segment.Points) == 0 {
				continue
			}

			line := make(Polyline, 0, len(segment.Points))
			for _, p := range segment.Points {
				line = append(line, LatLon{Lat: p.Latitude, Lon: p.Longitude})
			}
			t.Polylines = append(t.Polylines, line)
		}
	}

	return t, nil
}

// timeBounds returns the first and the last timestamp over all points.
// gpx.GPX.TimeBounds skips segments with less than two points.
func timeBounds(gpxData *gpx.GPX) (start, end time.Time) {
	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				if p.Timestamp.IsZero() {
					continue
				}
				if start.IsZero() {
					start = p.Timestamp
				}
				end = p.Timestamp
			}
		}
	}
	return
}

func pointBounds(gpxData *gpx.GPX) (b Bounds, ok bool) {
	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				if !ok {
					b = Bounds{MinLat: p.Latitude, MaxLat: p.Latitude, MinLon: p.Longitude, MaxLon: p.Longitude}
					ok = true
					continue
				}
				b.MinLat = math.Min(b.MinLat, p.Latitude)
				b.MaxLat = math.Max(b.MaxLat, p.Latitude)
				b.MinLon = math.Min(b.MinLon, p.Longitude)
				b.MaxLon = math.Max(b.MaxLon, p.Longitude)
			}
		}
	}
	return
}
