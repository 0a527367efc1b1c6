package geotrack

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/bgraf/trackposter/config"
)

// DefaultSimplifyTolerance is the maximum deviation in meters allowed when
// simplifying a freshly parsed track.
const DefaultSimplifyTolerance = 10.0

type LoadOptions struct {
	SimplifyTolerance float64
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SimplifyTolerance: DefaultSimplifyTolerance}
}

// Load parses the track file at trackFilePath. The file type is derived from
// the extension.
func Load(trackFilePath string, opts LoadOptions) (*Track, error) {
	var (
		t   *Track
		err error
	)

	ext := strings.ToLower(path.Ext(trackFilePath))
	if slices.Contains(config.GPXExtensions(), ext) {
		t, err = loadGPXTrack(trackFilePath, opts)
	} else if slices.Contains(config.NMEAExtensions(), ext) {
		t, err = loadNMEATrack(trackFilePath, opts)
	} else {
		return nil, fmt.Errorf("unknown track extension '%s'", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path.Base(trackFilePath), err)
	}

	return t, nil
}
