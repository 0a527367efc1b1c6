package building

import (
	"time"

	"github.com/bgraf/trackposter/config"
	"github.com/bgraf/trackposter/filesystem"
)

type Options struct {
	TracksDirectory   string
	CacheDirectory    string
	Year              int
	MinLength         float64
	MergeGap          time.Duration
	SpecialFiles      []string
	SimplifyTolerance float64

	Title         string
	Width         float64
	Height        float64
	Locale        string
	Colors        map[string]string
	PixelsPerUnit float64
}

// OptionsFromConfig collects the options from the active configuration.
func OptionsFromConfig() Options {
	opts := Options{
		TracksDirectory:   filesystem.Abs(config.TracksDirectory()),
		Year:              config.Year(),
		MinLength:         config.MinLength(),
		MergeGap:          config.MergeGap(),
		SpecialFiles:      config.SpecialFiles(),
		SimplifyTolerance: config.SimplifyTolerance(),
		Title:             config.PosterTitle(),
		Width:             config.PosterWidth(),
		Height:            config.PosterHeight(),
		Locale:            config.PosterLocale(),
		Colors:            config.Colors(),
	}

	if config.HasCacheDirectory() {
		opts.CacheDirectory = filesystem.Abs(config.CacheDirectory())
	}

	return opts
}
