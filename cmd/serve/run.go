package serve

import (
	"log"
	"sync"

	"github.com/bgraf/trackposter/building"
	"github.com/bgraf/trackposter/config"
	"github.com/bgraf/trackposter/data/geotrack"
	"github.com/bgraf/trackposter/render"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func RunServeCmd(cmd *cobra.Command, args []string) error {
	opts := building.OptionsFromConfig()

	tracks, err := building.LoadTracks(opts)
	if err != nil {
		return err
	}

	api, err := newServeAPI(opts, tracks)
	if err != nil {
		return err
	}

	addr := config.ServeAddress()
	log.Printf("listening on %s", addr)

	return api.router().Run(addr)
}

type serveAPI struct {
	opts   building.Options
	poster *render.Poster
	byID   map[uuid.UUID]*geotrack.Track

	// Rendered posters by format.
	mu      sync.Mutex
	posters map[building.Format][]byte
}

func newServeAPI(opts building.Options, tracks []*geotrack.Track) (*serveAPI, error) {
	poster, err := building.NewPoster(opts, tracks)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*geotrack.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID()] = t
	}

	return &serveAPI{
		opts:    opts,
		poster:  poster,
		byID:    byID,
		posters: make(map[building.Format][]byte),
	}, nil
}

func (api *serveAPI) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/poster.svg", api.ServePoster(building.FormatSVG))
	r.GET("/poster.png", api.ServePoster(building.FormatPNG))
	r.GET("/tracks", api.ServeTracks)
	r.GET("/tracks/:id", api.ServeTrack)

	return r
}
