package geotrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bgraf/trackposter/filesystem"
	"github.com/bgraf/trackposter/option"
	"github.com/bgraf/trackposter/util/dates"
)

type cacheTrack struct {
	Start    cacheTime      `json:"start"`
	End      cacheTime      `json:"end"`
	Length   cacheNumber    `json:"length"`
	MinLat   *float64       `json:"min_lat,omitempty"`
	MaxLat   *float64       `json:"max_lat,omitempty"`
	MinLon   *float64       `json:"min_lon,omitempty"`
	MaxLon   *float64       `json:"max_lon,omitempty"`
	Segments [][]cachePoint `json:"segments"`
}

type cachePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type cacheTime time.Time

func (c cacheTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(c).UTC().Format(dates.TimestampLayout))
}

func (c *cacheTime) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}

	t, err := time.Parse(dates.TimestampLayout, s)
	if err != nil {
		return err
	}

	*c = cacheTime(t)
	return nil
}

// cacheNumber accepts plain numbers as well as decimal strings.
type cacheNumber float64

func (c *cacheNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse length: %w", err)
		}

		*c = cacheNumber(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	*c = cacheNumber(f)
	return nil
}

// LoadCache replaces the content of t by the cache file at cacheFilePath.
// File names and the special flag are not part of the cache.
func (t *Track) LoadCache(cacheFilePath string) error {
	payloadBytes, err := os.ReadFile(cacheFilePath)
	if err != nil {
		return err
	}

	var c cacheTrack
	if err := json.Unmarshal(payloadBytes, &c); err != nil {
		return fmt.Errorf("decode cache file: %w", err)
	}

	t.StartTime = time.Time(c.Start)
	t.EndTime = time.Time(c.End)
	t.Length = float64(c.Length)

	t.Bounds = option.None[Bounds]()
	if c.MinLat != nil && c.MaxLat != nil && c.MinLon != nil && c.MaxLon != nil {
		t.Bounds = option.Some(Bounds{
			MinLat: *c.MinLat,
			MaxLat: *c.MaxLat,
			MinLon: *c.MinLon,
			MaxLon: *c.MaxLon,
		})
	}

	t.Polylines = make([]Polyline, 0, len(c.Segments))
	for _, segment := range c.Segments {
		line := make(Polyline, 0, len(segment))
		for _, p := range segment {
			line = append(line, LatLon{Lat: p.Lat, Lon: p.Lng})
		}
		t.Polylines = append(t.Polylines, line)
	}

	return nil
}

// StoreCache writes t to cacheFilePath, creating missing parent directories.
func (t *Track) StoreCache(cacheFilePath string) error {
	if err := filesystem.CreateDirectoryIfNotExists(filepath.Dir(cacheFilePath)); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	c := cacheTrack{
		Start:    cacheTime(t.StartTime),
		End:      cacheTime(t.EndTime),
		Length:   cacheNumber(t.Length),
		Segments: make([][]cachePoint, 0, len(t.Polylines)),
	}

	if t.Bounds.IsSome() {
		b := t.Bounds.Get()
		c.MinLat, c.MaxLat = &b.MinLat, &b.MaxLat
		c.MinLon, c.MaxLon = &b.MinLon, &b.MaxLon
	}

	for _, line := range t.Polylines {
		segment := make([]cachePoint, 0, len(line))
		for _, p := range line {
			segment = append(segment, cachePoint{Lat: p.Lat, Lng: p.Lon})
		}
		c.Segments = append(c.Segments, segment)
	}

	jsonBytes, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(cacheFilePath, jsonBytes, 0o666)
}
