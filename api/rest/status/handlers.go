package status

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/upstream"
	"github.com/gin-gonic/gin"
)

type Prober interface {
	Probe(ctx context.Context) (*upstream.ProbeResult, error)
}

// Handler godoc
// @Summary Upstream reachability
// @Description Probes the image service for the default model and reports operational or degraded
// @Tags status
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/status [get]
func Handler(prober Prober) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := prober.Probe(c.Request.Context())
		if err != nil {
			errors.Respond(c, errors.ServerError(err))
			return
		}

		status := StatusDegraded
		if result.Operational() {
			status = StatusOperational
		}

		c.JSON(http.StatusOK, Response{
			Success:   true,
			Status:    status,
			Upstream:  result,
			LatencyMs: result.Latency.Milliseconds(),
			CheckedAt: time.Now().UTC(),
		})
	}
}
