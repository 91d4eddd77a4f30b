package main

import (
	"net/http"
	"time"

	"codeberg.org/pixelgate/server/api/rest/admin"
	"codeberg.org/pixelgate/server/api/rest/generate"
	"codeberg.org/pixelgate/server/api/rest/health"
	"codeberg.org/pixelgate/server/api/rest/models"
	"codeberg.org/pixelgate/server/api/rest/status"
	"codeberg.org/pixelgate/server/docs"
	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/metrics"
	"codeberg.org/pixelgate/server/internal/ratelimit"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	cfg := server.config

	router.Use(errors.Recovery())

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true, Timeout: 2 * time.Second}))
	}

	router.Use(
		RequestLogger(),
		metrics.Middleware(),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		ratelimit.Middleware(server.services.Limiter, "/metrics"),
	)

	router.GET("/", health.Handler(server.plans, version))
	router.GET("/metrics", metrics.Handler())
	router.GET("/openapi.json", OpenAPIHandler)

	api := router.Group("/api")

	{
		models.RegisterRoutes(api, cfg.DefaultModel)
		status.RegisterRoutes(api, server.services.Upstream)
		generate.RegisterRoutes(api, server.services.Gateway, entitlement.Middleware(server.services.Entitlement, server.plans))
	}

	admin.RegisterRoutes(router, cfg.AdminSecret, admin.Info{
		Version:      version,
		Environment:  cfg.Environment,
		StartedAt:    server.startedAt,
		UsageCounter: cfg.UsageCounter,
		RateLimit:    ratelimit.Describe(server.services.Limiter),
		DefaultModel: cfg.DefaultModel,
		UpstreamURL:  cfg.UpstreamBaseURL,
	}, server.services.Gateway)

	router.NoRoute(errors.NoRoute)
}

// serves the registered OpenAPI document
func OpenAPIHandler(c *gin.Context) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		errors.Respond(c, errors.ServerError(err))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
