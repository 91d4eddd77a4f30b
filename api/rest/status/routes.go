package status

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, prober Prober) {
	router.GET("/status", Handler(prober))
}
