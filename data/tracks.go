package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/bgraf/trackposter/config"
	"github.com/bgraf/trackposter/data/geotrack"
	"github.com/bgraf/trackposter/filesystem"
	"github.com/bgraf/trackposter/logging"
)

// TrackLoader loads all track files of a directory, using an optional cache
// directory to skip parsing of known files.
type TrackLoader struct {
	CacheDirectory   string
	Extensions       []string
	Year             int
	MinLength        float64
	MergeGap         time.Duration
	SpecialFileNames []string
	LoadOptions      geotrack.LoadOptions
}

func NewTrackLoader() *TrackLoader {
	return &TrackLoader{
		Extensions:  config.TrackExtensions(),
		MinLength:   1000,
		MergeGap:    time.Hour,
		LoadOptions: geotrack.DefaultLoadOptions(),
	}
}

// ClearCache removes the cache directory and all its content.
func (l *TrackLoader) ClearCache() error {
	if l.CacheDirectory == "" || !filesystem.IsDirectory(l.CacheDirectory) {
		return nil
	}

	log.Printf("removing cache directory %s", l.CacheDirectory)
	if err := os.RemoveAll(l.CacheDirectory); err != nil {
		return fmt.Errorf("remove cache directory: %w", err)
	}

	return nil
}

// LoadTracks loads, filters, sorts and merges the tracks in baseDirectory.
func (l *TrackLoader) LoadTracks(baseDirectory string) ([]*geotrack.Track, error) {
	if !filesystem.IsDirectory(baseDirectory) {
		return nil, fmt.Errorf("not a directory: %s", baseDirectory)
	}

	filePaths, err := filesystem.GatherFiles([]string{baseDirectory}, l.Extensions)
	if err != nil {
		return nil, fmt.Errorf("scanning files: %w", err)
	}
	log.Printf("found %d track files", len(filePaths))

	tracks := make(map[string]*geotrack.Track)

	if l.CacheDirectory != "" {
		for _, filePath := range filePaths {
			t, err := l.loadCachedTrack(filePath)
			if err != nil {
				logging.Debugf("%s: not cached: %s", filepath.Base(filePath), err)
				continue
			}
			tracks[filePath] = t
		}
		log.Printf("loaded %d tracks from cache", len(tracks))
	}

	var remaining []string
	for _, filePath := range filePaths {
		if _, ok := tracks[filePath]; !ok {
			remaining = append(remaining, filePath)
		}
	}

	if len(remaining) > 0 {
		log.Printf("parsing %d track files", len(remaining))
		parsed := l.parseTracks(remaining)

		if l.CacheDirectory != "" {
			for filePath, t := range parsed {
				if err := l.storeCachedTrack(filePath, t); err != nil {
					log.Printf("%s: could not store cache: %s", filepath.Base(filePath), err)
				}
			}
		}

		for filePath, t := range parsed {
			tracks[filePath] = t
		}
	}

	// Iterate in file order to keep results independent of map ordering.
	var collected []*geotrack.Track
	for _, filePath := range filePaths {
		if t, ok := tracks[filePath]; ok {
			collected = append(collected, t)
		}
	}

	return l.Process(collected), nil
}

// Process filters, flags, sorts and merges already loaded tracks.
func (l *TrackLoader) Process(tracks []*geotrack.Track) []*geotrack.Track {
	var filtered []*geotrack.Track
	for _, t := range tracks {
		fileName := ""
		if len(t.FileNames) > 0 {
			fileName = t.FileNames[0]
		}

		switch {
		case t.Length == 0:
			log.Printf("%s: skipping empty track", fileName)
		case t.StartTime.IsZero():
			log.Printf("%s: skipping track without start time", fileName)
		case l.Year != 0 && t.StartTime.Year() != l.Year:
			log.Printf("%s: skipping track with wrong year %d", fileName, t.StartTime.Year())
		default:
			t.Special = slices.Contains(l.SpecialFileNames, fileName)
			filtered = append(filtered, t)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartTime.Before(filtered[j].StartTime)
	})

	merged := mergeTracks(filtered, l.MergeGap)
	log.Printf("merged %d tracks", len(filtered)-len(merged))

	var result []*geotrack.Track
	for _, t := range merged {
		if t.Length >= l.MinLength {
			result = append(result, t)
		}
	}

	return result
}

// mergeTracks appends every track that starts less than gap after its
// predecessor ended to the last merged track. tracks must be sorted by start
// time.
func mergeTracks(tracks []*geotrack.Track, gap time.Duration) []*geotrack.Track {
	var (
		merged      []*geotrack.Track
		lastEndTime time.Time
	)

	for i, t := range tracks {
		if i == 0 {
			merged = append(merged, t)
		} else {
			dt := t.StartTime.Sub(lastEndTime)
			if dt > 0 && dt < gap {
				merged[len(merged)-1].Append(t)
			} else {
				merged = append(merged, t)
			}
		}
		lastEndTime = t.EndTime
	}

	return merged
}

func (l *TrackLoader) cacheFile(filePath string) (string, error) {
	checksum, err := filesystem.Checksum(filePath)
	if err != nil {
		return "", err
	}

	return filepath.Join(l.CacheDirectory, checksum+".json"), nil
}

func (l *TrackLoader) loadCachedTrack(filePath string) (*geotrack.Track, error) {
	cacheFile, err := l.cacheFile(filePath)
	if err != nil {
		return nil, err
	}

	t := &geotrack.Track{}
	if err := t.LoadCache(cacheFile); err != nil {
		return nil, err
	}
	t.FileNames = []string{filepath.Base(filePath)}

	return t, nil
}

func (l *TrackLoader) storeCachedTrack(filePath string, t *geotrack.Track) error {
	cacheFile, err := l.cacheFile(filePath)
	if err != nil {
		return err
	}

	return t.StoreCache(cacheFile)
}

// parseTracks parses the given files concurrently. Files that fail to load
// are logged and skipped.
func (l *TrackLoader) parseTracks(filePaths []string) map[string]*geotrack.Track {
	type result struct {
		filePath string
		track    *geotrack.Track
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []result
	)

	files := make(chan string)

	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func(files <-chan string) {
			defer wg.Done()
			for filePath := range files {
				logging.Debugf("loading track %s", filepath.Base(filePath))

				t, err := geotrack.Load(filePath, l.LoadOptions)
				if err != nil {
					log.Printf("error while loading %s: %s", filePath, err)
					continue
				}

				mu.Lock()
				results = append(results, result{filePath: filePath, track: t})
				mu.Unlock()
			}
		}(files)
	}

	for _, filePath := range filePaths {
		files <- filePath
	}
	close(files)

	wg.Wait()

	tracks := make(map[string]*geotrack.Track, len(results))
	for _, r := range results {
		tracks[r.filePath] = r.track
	}

	return tracks
}
