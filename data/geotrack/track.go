package geotrack

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/bgraf/trackposter/option"
	"github.com/google/uuid"
)

var (
	ErrMissingTimeBounds = errors.New("track has no start or end time")
	ErrEmptyTrack        = errors.New("track is empty")
)

// trackNamespace scopes the name based UUIDs of tracks.
var trackNamespace = uuid.MustParse("4f1b2c8e-6d1a-4f7e-9a55-0c3f2d9e8b71")

type LatLon struct {
	Lat, Lon float64
}

func (p LatLon) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{p.Lat, p.Lon})
}

// Polyline is one continuous recorded segment.
type Polyline []LatLon

type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

type Track struct {
	FileNames []string
	Polylines []Polyline
	Bounds    option.Option[Bounds]
	StartTime time.Time
	EndTime   time.Time
	Length    float64
	Special   bool
}

// ID identifies the track by the first file it was loaded from. Merged tracks
// keep the ID of the earliest track.
func (t *Track) ID() uuid.UUID {
	name := ""
	if len(t.FileNames) > 0 {
		name = t.FileNames[0]
	}
	return uuid.NewSHA1(trackNamespace, []byte(name))
}

// Append merges other into t. The geographic bounds of t are left untouched.
func (t *Track) Append(other *Track) {
	t.EndTime = other.EndTime
	t.Polylines = append(t.Polylines, other.Polylines...)
	t.Length += other.Length
	t.FileNames = append(t.FileNames, other.FileNames...)
	t.Special = t.Special || other.Special
}

// PointCount returns the number of points over all polylines.
func (t *Track) PointCount() int {
	n := 0
	for _, line := range t.Polylines {
		n += len(line)
	}
	return n
}
