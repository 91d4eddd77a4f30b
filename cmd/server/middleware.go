package main

import (
	"net/http"
	"slices"
	"time"

	"codeberg.org/pixelgate/server/internal/auth"
	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/logger"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// configures CORS for browser callers. "*" allows any origin.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			entitlement.HeaderPlan, entitlement.HeaderUser, entitlement.HeaderAPIKey,
			auth.AdminSecretHeader,
		},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	return cors.New(config)
}

// logs one line per request and reports server faults to sentry when enabled
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if caller, ok := entitlement.FromContext(c); ok {
			args = append(args, "caller_id", caller.CallerID, "plan", caller.Plan.ID)
		}

		if status >= http.StatusInternalServerError {
			if hub := sentrygin.GetHubFromContext(c); hub != nil && len(c.Errors) > 0 {
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetTag("path", c.FullPath())
					hub.CaptureException(c.Errors.Last().Err)
				})
			}
		}

		if c.Request.URL.Path == "/metrics" {
			return
		}

		logger.Info("request", args...)
	}
}
