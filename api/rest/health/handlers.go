package health

import (
	"net/http"

	"codeberg.org/pixelgate/server/internal/plans"
	"github.com/gin-gonic/gin"
)

const serviceName = "pixelgate"

var endpoints = []string{
	"GET /",
	"GET /api/models",
	"GET /api/status",
	"POST /api/generate",
	"POST /api/generate/batch",
}

// Handler godoc
// @Summary Liveness and pricing
// @Description Reports that the gateway is up and lists the subscription plans
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router / [get]
func Handler(table *plans.Table, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:    "healthy",
			Service:   serviceName,
			Version:   version,
			Plans:     table.All(),
			Endpoints: endpoints,
		})
	}
}
