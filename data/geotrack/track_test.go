package geotrack

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bgraf/trackposter/option"
)

type fixturePoint struct {
	lat, lon float64
	time     string
}

func writeGPX(t *testing.T, dir, name string, segments ...[]fixturePoint) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="trackposter-test" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")
	b.WriteString("<trk><name>test</name>\n")
	for _, seg := range segments {
		b.WriteString("<trkseg>\n")
		for _, p := range seg {
			fmt.Fprintf(&b, `<trkpt lat="%f" lon="%f">`, p.lat, p.lon)
			if p.time != "" {
				fmt.Fprintf(&b, "<time>%s</time>", p.time)
			}
			b.WriteString("</trkpt>\n")
		}
		b.WriteString("</trkseg>\n")
	}
	b.WriteString("</trk></gpx>\n")

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

var (
	morningRide = []fixturePoint{
		{48.00, 11.00, "2017-03-04T08:00:00Z"},
		{48.01, 11.00, "2017-03-04T08:05:00Z"},
		{48.02, 11.01, "2017-03-04T08:10:00Z"},
	}
	morningRideBack = []fixturePoint{
		{48.02, 11.02, "2017-03-04T08:20:00Z"},
		{48.00, 11.02, "2017-03-04T08:30:00Z"},
	}
)

func TestLoadGPX(t *testing.T) {
	path := writeGPX(t, t.TempDir(), "ride.gpx", morningRide, morningRideBack)

	tr, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tr.FileNames) != 1 || tr.FileNames[0] != "ride.gpx" {
		t.Errorf("FileNames = %v", tr.FileNames)
	}
	if len(tr.Polylines) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(tr.Polylines))
	}
	if len(tr.Polylines[0]) != 3 || len(tr.Polylines[1]) != 2 {
		t.Errorf("unexpected polyline sizes %d, %d", len(tr.Polylines[0]), len(tr.Polylines[1]))
	}
	if tr.Polylines[1][1] != (LatLon{Lat: 48.00, Lon: 11.02}) {
		t.Errorf("unexpected last point %v", tr.Polylines[1][1])
	}

	wantStart := time.Date(2017, time.March, 4, 8, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2017, time.March, 4, 8, 30, 0, 0, time.UTC)
	if !tr.StartTime.Equal(wantStart) || !tr.EndTime.Equal(wantEnd) {
		t.Errorf("time bounds = %v..%v", tr.StartTime, tr.EndTime)
	}

	if tr.Length <= 0 {
		t.Errorf("expected positive length, got %f", tr.Length)
	}

	if tr.Bounds.IsNone() {
		t.Fatalf("expected bounds")
	}
	b := tr.Bounds.Get()
	if b.MinLat != 48.00 || b.MaxLat != 48.02 || b.MinLon != 11.00 || b.MaxLon != 11.02 {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestLoadGPX_SimplifyKeepsEndpoints(t *testing.T) {
	var line []fixturePoint
	for i := 0; i <= 20; i++ {
		line = append(line, fixturePoint{
			lat:  48.0 + float64(i)*0.001,
			lon:  11.0,
			time: fmt.Sprintf("2017-03-04T08:%02d:00Z", i),
		})
	}
	path := writeGPX(t, t.TempDir(), "straight.gpx", line)

	tr, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tr.Polylines) != 1 {
		t.Fatalf("expected 1 polyline, got %d", len(tr.Polylines))
	}
	pl := tr.Polylines[0]
	if len(pl) >= len(line) {
		t.Errorf("expected simplification to drop points, got %d", len(pl))
	}
	if pl[0].Lat != 48.0 || pl[len(pl)-1].Lat != 48.02 {
		t.Errorf("endpoints not preserved: %v .. %v", pl[0], pl[len(pl)-1])
	}
}

func TestLoadGPX_Errors(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		points []fixturePoint
		want   error
	}{
		{
			name: "missing time",
			points: []fixturePoint{
				{48.00, 11.00, ""},
				{48.01, 11.00, ""},
			},
			want: ErrMissingTimeBounds,
		},
		{
			name: "zero length",
			points: []fixturePoint{
				{48.00, 11.00, "2017-03-04T08:00:00Z"},
				{48.00, 11.00, "2017-03-04T08:05:00Z"},
			},
			want: ErrEmptyTrack,
		},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeGPX(t, dir, fmt.Sprintf("case%d.gpx", i), tc.points)
			_, err := Load(path, DefaultLoadOptions())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadGPX_SparseSegments(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2017, time.March, 4, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		segments [][]fixturePoint
		wantEnd  time.Time
	}{
		{
			name:     "single point segment",
			segments: [][]fixturePoint{morningRide, {{48.05, 11.05, "2017-03-04T09:00:00Z"}}},
			wantEnd:  time.Date(2017, time.March, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "empty segment",
			segments: [][]fixturePoint{morningRide, {}},
			wantEnd:  time.Date(2017, time.March, 4, 8, 10, 0, 0, time.UTC),
		},
		{
			name:     "leading single point segment",
			segments: [][]fixturePoint{{{47.99, 10.99, "2017-03-04T08:00:00Z"}}, morningRideBack},
			wantEnd:  time.Date(2017, time.March, 4, 8, 30, 0, 0, time.UTC),
		},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeGPX(t, dir, fmt.Sprintf("sparse%d.gpx", i), tc.segments...)
			tr, err := Load(path, DefaultLoadOptions())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tr.StartTime.Equal(start) || !tr.EndTime.Equal(tc.wantEnd) {
				t.Errorf("unexpected time range %v..%v", tr.StartTime, tr.EndTime)
			}
			if tr.Bounds.IsNone() {
				t.Errorf("expected bounds")
			}
		})
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.fit")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, DefaultLoadOptions()); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
}

const nmeaLog = `$GPRMC,080000,A,4800.000,N,01100.000,E,010.0,000.0,040317,000.0,E*72
$GPRMC,080100,A,4801.000,N,01100.000,E,010.0,000.0,040317,000.0,E*72

$GPRMC,080200,V,4801.000,N,01100.000,E,010.0,000.0,040317,000.0,E*66
$GPRMC,080300,A,4802.000,N,01101.000,E,010.0,000.0,040317,000.0,E*72
$GPRMC,080400,A,4803.000,N,01101.000,E,010.0,000.0,040317,000.0,E*74
`

func TestReadNMEA(t *testing.T) {
	gpxData, err := readNMEA(bufio.NewScanner(strings.NewReader(nmeaLog)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gpxData.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(gpxData.Tracks))
	}
	segments := gpxData.Tracks[0].Segments
	if len(segments) != 2 {
		t.Fatalf("expected void fix to split into 2 segments, got %d", len(segments))
	}
	if len(segments[0].Points) != 2 || len(segments[1].Points) != 2 {
		t.Errorf("unexpected segment sizes")
	}

	first := segments[0].Points[0]
	if first.Latitude != 48.0 || first.Longitude != 11.0 {
		t.Errorf("unexpected first point %f,%f", first.Latitude, first.Longitude)
	}
	if want := time.Date(2017, time.March, 4, 8, 0, 0, 0, time.UTC); !first.Timestamp.Equal(want) {
		t.Errorf("unexpected timestamp %v", first.Timestamp)
	}
}

func TestLoadNMEA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.nmea")
	if err := os.WriteFile(path, []byte(nmeaLog), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tr.Polylines) != 2 {
		t.Errorf("expected 2 polylines, got %d", len(tr.Polylines))
	}
	if tr.EndTime.Sub(tr.StartTime) != 4*time.Minute {
		t.Errorf("unexpected duration %v", tr.EndTime.Sub(tr.StartTime))
	}
	if tr.Length <= 0 {
		t.Errorf("expected positive length")
	}
}

func TestLoadNMEA_TrailingSingleFix(t *testing.T) {
	content := nmeaLog +
		"$GPRMC,080500,V,4803.000,N,01101.000,E,010.0,000.0,040317,000.0,E*62\n" +
		"$GPRMC,080600,A,4804.000,N,01101.000,E,010.0,000.0,040317,000.0,E*71\n"

	path := filepath.Join(t.TempDir(), "log.nmea")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tr.Polylines) != 3 {
		t.Errorf("expected 3 polylines, got %d", len(tr.Polylines))
	}
	if tr.EndTime.Sub(tr.StartTime) != 6*time.Minute {
		t.Errorf("unexpected duration %v", tr.EndTime.Sub(tr.StartTime))
	}
	if b := tr.Bounds.Get(); math.Abs(b.MaxLat-(48+4.0/60)) > 1e-9 {
		t.Errorf("unexpected max latitude %f", b.MaxLat)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeGPX(t, dir, "ride.gpx", morningRide, morningRideBack)

	loaded, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cacheFile := filepath.Join(dir, "cache", "nested", "ride.json")
	if err := loaded.StoreCache(cacheFile); err != nil {
		t.Fatalf("store cache: %v", err)
	}

	var restored Track
	if err := restored.LoadCache(cacheFile); err != nil {
		t.Fatalf("load cache: %v", err)
	}

	if !restored.StartTime.Equal(loaded.StartTime) || !restored.EndTime.Equal(loaded.EndTime) {
		t.Errorf("time bounds differ: %v..%v vs %v..%v",
			restored.StartTime, restored.EndTime, loaded.StartTime, loaded.EndTime)
	}
	if restored.Length != loaded.Length {
		t.Errorf("length differs: %f vs %f", restored.Length, loaded.Length)
	}
	if len(restored.Polylines) != len(loaded.Polylines) {
		t.Fatalf("polyline count differs")
	}
	for i := range loaded.Polylines {
		if len(restored.Polylines[i]) != len(loaded.Polylines[i]) {
			t.Fatalf("polyline %d size differs", i)
		}
		for j := range loaded.Polylines[i] {
			if restored.Polylines[i][j] != loaded.Polylines[i][j] {
				t.Errorf("point %d/%d differs: %v vs %v", i, j, restored.Polylines[i][j], loaded.Polylines[i][j])
			}
		}
	}
	if restored.Bounds.IsNone() || restored.Bounds.Get() != loaded.Bounds.Get() {
		t.Errorf("bounds not restored")
	}
}

func TestLoadCache_LegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	payload := `{"start": "2016-05-01 10:00:00", "end": "2016-05-01 11:30:15", "length": "1234.5",
		"segments": [[{"lat": 1.5, "lng": 2.5}, {"lat": 1.6, "lng": 2.6}]]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	var tr Track
	if err := tr.LoadCache(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Length != 1234.5 {
		t.Errorf("Length = %f", tr.Length)
	}
	if want := time.Date(2016, time.May, 1, 11, 30, 15, 0, time.UTC); !tr.EndTime.Equal(want) {
		t.Errorf("EndTime = %v", tr.EndTime)
	}
	if tr.Bounds.IsSome() {
		t.Errorf("expected no bounds")
	}
	if len(tr.Polylines) != 1 || tr.Polylines[0][1] != (LatLon{Lat: 1.6, Lon: 2.6}) {
		t.Errorf("unexpected polylines %v", tr.Polylines)
	}
}

func TestLoadCache_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"start": "yesterday"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var tr Track
	if err := tr.LoadCache(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAppend(t *testing.T) {
	a := &Track{
		FileNames: []string{"a.gpx"},
		Polylines: []Polyline{{{0, 0}, {0, 10}}},
		Bounds:    option.Some(Bounds{MinLat: 0, MaxLat: 0, MinLon: 0, MaxLon: 10}),
		StartTime: time.Date(2017, 1, 1, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2017, 1, 1, 9, 0, 0, 0, time.UTC),
		Length:    1500,
	}
	b := &Track{
		FileNames: []string{"b.gpx"},
		Polylines: []Polyline{{{10, 0}, {10, 10}}, {{20, 0}}},
		StartTime: time.Date(2017, 1, 1, 9, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2017, 1, 1, 10, 0, 0, 0, time.UTC),
		Length:    500,
		Special:   true,
	}
	id := a.ID()

	a.Append(b)

	if a.Length != 2000 {
		t.Errorf("Length = %f", a.Length)
	}
	if len(a.Polylines) != 3 || a.Polylines[1][0] != (LatLon{10, 0}) {
		t.Errorf("unexpected polylines %v", a.Polylines)
	}
	if !a.EndTime.Equal(b.EndTime) {
		t.Errorf("EndTime = %v", a.EndTime)
	}
	if !a.StartTime.Equal(time.Date(2017, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("StartTime changed")
	}
	if !a.Special {
		t.Errorf("expected special flag")
	}
	if len(a.FileNames) != 2 || a.FileNames[1] != "b.gpx" {
		t.Errorf("FileNames = %v", a.FileNames)
	}
	if a.Bounds.Get().MaxLat != 0 {
		t.Errorf("bounds must not be recomputed")
	}
	if a.ID() != id {
		t.Errorf("ID changed after merge")
	}
	if a.PointCount() != 5 {
		t.Errorf("PointCount = %d", a.PointCount())
	}
}
