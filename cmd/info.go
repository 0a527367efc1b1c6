package cmd

import (
	"io"
	"os"

	"github.com/bgraf/trackposter/building"
	"github.com/bgraf/trackposter/data/geotrack"
	"github.com/bgraf/trackposter/util/dates"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print a summary of the loaded tracks as YAML",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

type trackSummary struct {
	ID       string   `yaml:"id"`
	Files    []string `yaml:"files"`
	Start    string   `yaml:"start"`
	End      string   `yaml:"end"`
	LengthKM float64  `yaml:"length_km"`
	Segments int      `yaml:"segments"`
	Points   int      `yaml:"points"`
	Special  bool     `yaml:"special,omitempty"`
	MinLat   *float64 `yaml:"min_lat,omitempty"`
	MaxLat   *float64 `yaml:"max_lat,omitempty"`
	MinLon   *float64 `yaml:"min_lon,omitempty"`
	MaxLon   *float64 `yaml:"max_lon,omitempty"`
}

func summarizeTrack(t *geotrack.Track) trackSummary {
	s := trackSummary{
		ID:       t.ID().String(),
		Files:    t.FileNames,
		Start:    t.StartTime.Format(dates.TimestampLayout),
		End:      t.EndTime.Format(dates.TimestampLayout),
		LengthKM: float64(int(t.Length/10)) / 100,
		Segments: len(t.Polylines),
		Points:   t.PointCount(),
		Special:  t.Special,
	}

	if t.Bounds.IsSome() {
		b := t.Bounds.Get()
		s.MinLat, s.MaxLat = &b.MinLat, &b.MaxLat
		s.MinLon, s.MaxLon = &b.MinLon, &b.MaxLon
	}

	return s
}

func writeTrackSummaries(w io.Writer, tracks []*geotrack.Track) error {
	summaries := make([]trackSummary, 0, len(tracks))
	for _, t := range tracks {
		summaries = append(summaries, summarizeTrack(t))
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(summaries); err != nil {
		return err
	}

	return enc.Close()
}

func runInfo(cmd *cobra.Command, args []string) error {
	tracks, err := building.LoadTracks(building.OptionsFromConfig())
	if err != nil {
		return err
	}

	return writeTrackSummaries(os.Stdout, tracks)
}
