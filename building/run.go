package building

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgraf/trackposter/data"
	"github.com/bgraf/trackposter/data/geotrack"
	"github.com/bgraf/trackposter/filesystem"
	"github.com/bgraf/trackposter/render"
	"github.com/goodsign/monday"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// FormatFromPath derives the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported output extension '%s'", ext)
	}
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func NewTrackLoader(opts Options) *data.TrackLoader {
	loader := data.NewTrackLoader()
	loader.CacheDirectory = opts.CacheDirectory
	loader.Year = opts.Year
	loader.MinLength = opts.MinLength
	loader.MergeGap = opts.MergeGap
	loader.SpecialFileNames = opts.SpecialFiles
	loader.LoadOptions.SimplifyTolerance = opts.SimplifyTolerance

	return loader
}

func LoadTracks(opts Options) ([]*geotrack.Track, error) {
	tracks, err := NewTrackLoader(opts).LoadTracks(opts.TracksDirectory)
	if err != nil {
		return nil, err
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("no tracks found in %s", opts.TracksDirectory)
	}

	log.Printf("using %d tracks", len(tracks))

	return tracks, nil
}

func NewPoster(opts Options, tracks []*geotrack.Track) (*render.Poster, error) {
	palette, err := render.ParsePalette(opts.Colors)
	if err != nil {
		return nil, err
	}

	return &render.Poster{
		Title:  opts.Title,
		Tracks: tracks,
		Colors: palette,
		Width:  opts.Width,
		Height: opts.Height,
		Locale: monday.Locale(opts.Locale),
	}, nil
}

// WritePoster draws the poster in the given format and writes it to w.
func WritePoster(w io.Writer, poster *render.Poster, format Format, pixelsPerUnit float64) error {
	var canvas interface {
		render.Surface
		io.WriterTo
	}

	switch format {
	case FormatSVG:
		canvas = render.NewSVGCanvas(poster.Width, poster.Height)
	case FormatPNG:
		c, err := render.NewPNGCanvas(poster.Width, poster.Height, pixelsPerUnit)
		if err != nil {
			return err
		}
		canvas = c
	default:
		return fmt.Errorf("unknown format '%s'", format)
	}

	if err := poster.Draw(canvas); err != nil {
		return fmt.Errorf("draw poster: %w", err)
	}

	_, err := canvas.WriteTo(w)
	return err
}

// Build loads the tracks and writes the poster to outputPath.
func Build(opts Options, outputPath string) error {
	format, err := FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	log.Printf("tracks directory: %s", opts.TracksDirectory)
	if opts.CacheDirectory != "" {
		log.Printf("cache directory:  %s", opts.CacheDirectory)
	}

	tracks, err := LoadTracks(opts)
	if err != nil {
		return err
	}

	poster, err := NewPoster(opts, tracks)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WritePoster(&buf, poster, format, opts.PixelsPerUnit); err != nil {
		return err
	}

	if err := filesystem.CreateDirectoryIfNotExists(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("could not ensure output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o666); err != nil {
		return fmt.Errorf("could not write poster: %w", err)
	}

	log.Printf("written poster '%s'", outputPath)

	return nil
}
