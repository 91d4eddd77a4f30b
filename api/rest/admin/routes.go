package admin

import (
	"codeberg.org/pixelgate/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, secret string, info Info, reader UsageReader) {
	admin := router.Group("/admin")
	admin.Use(auth.AdminAuthMiddleware(secret))

	admin.GET("/health", Health(info))
	admin.GET("/usage", Usage(reader))
}
