package serve

import (
	"bytes"
	"net/http"

	"github.com/bgraf/trackposter/building"
	"github.com/gin-gonic/gin"
)

func (api *serveAPI) ServePoster(format building.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := api.renderPoster(format)
		if err != nil {
			_ = c.Error(err)
			c.String(http.StatusInternalServerError, "error during rendering")
			return
		}

		c.Data(http.StatusOK, format.ContentType(), content)
	}
}

// renderPoster draws the poster once per format and keeps the result, the
// loaded tracks do not change while serving.
func (api *serveAPI) renderPoster(format building.Format) ([]byte, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	if content, ok := api.posters[format]; ok {
		return content, nil
	}

	var buf bytes.Buffer
	if err := building.WritePoster(&buf, api.poster, format, api.opts.PixelsPerUnit); err != nil {
		return nil, err
	}

	api.posters[format] = buf.Bytes()
	return buf.Bytes(), nil
}
