package geotrack

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/tkrajina/gpxgo/gpx"
)

func loadNMEATrack(trackFilePath string, opts LoadOptions) (*Track, error) {
	f, err := os.Open(trackFilePath)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	gpxData, err := readNMEA(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("read NMEA file: %w", err)
	}

	return trackFromGPX(filepath.Base(trackFilePath), gpxData, opts)
}

// readNMEA converts the RMC sentences of an NMEA log into a single GPX track.
// A void fix closes the current segment.
func readNMEA(scanner *bufio.Scanner) (*gpx.GPX, error) {
	var (
		track   gpx.GPXTrack
		segment gpx.GPXTrackSegment
	)

	closeSegment := func() {
		if len(segment.Points) > 0 {
			track.Segments = append(track.Segments, segment)
		}
		segment = gpx.GPXTrackSegment{}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			return nil, err
		}

		if sentence.DataType() != nmea.TypeRMC {
			continue
		}

		rmc := sentence.(nmea.RMC)
		if rmc.Validity != nmea.ValidRMC {
			closeSegment()
			continue
		}

		// Adds 2000 to the date... I think this will be sufficient for life :)
		date := time.Date(
			2000+rmc.Date.YY, time.Month(rmc.Date.MM), rmc.Date.DD,
			rmc.Time.Hour, rmc.Time.Minute, rmc.Time.Second, 0, time.UTC,
		)

		var p gpx.GPXPoint
		p.Latitude = rmc.Latitude
		p.Longitude = rmc.Longitude
		p.Timestamp = date
		segment.Points = append(segment.Points, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	closeSegment()

	gpxData := &gpx.GPX{}
	if len(track.Segments) > 0 {
		gpxData.Tracks = append(gpxData.Tracks, track)
	}

	return gpxData, nil
}
