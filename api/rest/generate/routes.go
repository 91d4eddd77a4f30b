package generate

import (
	"codeberg.org/pixelgate/server/internal/gateway"
	"github.com/gin-gonic/gin"
)

// registers generation routes. resolveCaller must run first so handlers see a caller.
func RegisterRoutes(router *gin.RouterGroup, svc *gateway.Service, resolveCaller gin.HandlerFunc) {
	generate := router.Group("/generate")
	generate.Use(resolveCaller)

	generate.POST("", Handler(svc))
	generate.POST("/batch", BatchHandler(svc))
}
