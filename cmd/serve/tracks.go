package serve

import (
	"net/http"
	"time"

	"github.com/bgraf/trackposter/data/geotrack"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type trackInfo struct {
	ID      uuid.UUID `json:"id"`
	Files   []string  `json:"files"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Length  float64   `json:"length"`
	Special bool      `json:"special"`
}

func newTrackInfo(t *geotrack.Track) trackInfo {
	return trackInfo{
		ID:      t.ID(),
		Files:   t.FileNames,
		Start:   t.StartTime,
		End:     t.EndTime,
		Length:  t.Length,
		Special: t.Special,
	}
}

func (api *serveAPI) ServeTracks(c *gin.Context) {
	infos := make([]trackInfo, 0, len(api.poster.Tracks))
	for _, t := range api.poster.Tracks {
		infos = append(infos, newTrackInfo(t))
	}

	c.JSON(http.StatusOK, infos)
}

func (api *serveAPI) ServeTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	t, ok := api.byID[id]
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.JSON(
		http.StatusOK,
		gin.H{
			"track":     newTrackInfo(t),
			"polylines": t.Polylines,
		},
	)
}
