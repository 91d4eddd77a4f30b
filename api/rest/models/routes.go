package models

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, defaultModel string) {
	router.GET("/models", List(defaultModel))
}
