package main

import (
	"time"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/plans"
	"codeberg.org/pixelgate/server/internal/upstream"
	"codeberg.org/pixelgate/server/internal/usage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
)

const version = "1.0.0"

// holds all dependencies and state for the API server
type Server struct {
	config    *config.Config
	plans     *plans.Table
	services  *Services
	redis     *redis.Client // nil unless REDIS_URL is set
	pruner    *usage.Pruner // nil unless counting in memory
	router    *gin.Engine
	startedAt time.Time
}

// holds the collaborators of the generation pipeline
type Services struct {
	Upstream    *upstream.Client
	Gateway     *gateway.Service
	Counter     usage.Counter // nil when counting is off
	Limiter     *limiter.Limiter
	Entitlement entitlement.Provider
}
