package auth

import (
	"crypto/subtle"

	"codeberg.org/pixelgate/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// guards operator routes with a shared secret header.
// an empty configured secret rejects every request; config loading refuses
// to start without one, so this only matters for misuse in tests or wiring.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	expected := []byte(secret)

	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(AdminSecretHeader))

		if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			errors.Respond(c, errors.Unauthorized())
			return
		}

		c.Next()
	}
}
