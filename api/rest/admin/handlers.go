package admin

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/usage"
	"github.com/gin-gonic/gin"
)

type UsageReader interface {
	Usage(ctx context.Context) ([]usage.Entry, bool, error)
}

// Health godoc
// @Summary Operator health snapshot
// @Tags admin
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/health [get]
// @Security AdminKeyAuth
func Health(info Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Success:       true,
			Status:        "healthy",
			Version:       info.Version,
			Environment:   info.Environment,
			StartedAt:     info.StartedAt.UTC(),
			UptimeSeconds: int64(time.Since(info.StartedAt).Seconds()),
			Goroutines:    runtime.NumGoroutine(),
			UsageCounter:  info.UsageCounter,
			RateLimit:     info.RateLimit,
			DefaultModel:  info.DefaultModel,
			UpstreamURL:   info.UpstreamURL,
		})
	}
}

// Usage godoc
// @Summary Daily usage per caller
// @Tags admin
// @Produce json
// @Success 200 {object} UsageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/usage [get]
// @Security AdminKeyAuth
func Usage(reader UsageReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, enabled, err := reader.Usage(c.Request.Context())
		if err != nil {
			errors.Respond(c, errors.ServerError(err))
			return
		}

		if entries == nil {
			entries = []usage.Entry{}
		}

		resp := UsageResponse{
			Success: true,
			Enabled: enabled,
			Day:     usage.Today(),
			Entries: entries,
		}

		for _, e := range entries {
			if e.Day == resp.Day {
				resp.Callers++
				resp.Total += e.Count
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
