package models

import (
	"net/http"

	"codeberg.org/pixelgate/server/internal/catalog"
	"github.com/gin-gonic/gin"
)

// List godoc
// @Summary List supported models
// @Tags models
// @Produce json
// @Success 200 {object} Response
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/models [get]
func List(defaultModel string) gin.HandlerFunc {
	models := catalog.New(defaultModel).All()

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Success: true, Models: models})
	}
}
