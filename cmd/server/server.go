package main

import (
	"fmt"
	"time"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/logger"
	"codeberg.org/pixelgate/server/internal/plans"
	"codeberg.org/pixelgate/server/internal/ratelimit"
	"codeberg.org/pixelgate/server/internal/usage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	table := plans.Default()
	if cfg.PlansFile != "" {
		loaded, err := plans.Load(cfg.PlansFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load plans: %w", err)
		}
		table = loaded
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := usage.Connect(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		redisClient = client
	}

	services, err := InitializeServices(cfg, table, redisClient)
	if err != nil {
		closeRedis(redisClient)
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	var pruner *usage.Pruner
	if memory, ok := services.Counter.(*usage.MemoryCounter); ok {
		pruner = usage.NewPruner(memory)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:    cfg,
		plans:     table,
		services:  services,
		redis:     redisClient,
		pruner:    pruner,
		router:    router,
		startedAt: time.Now(),
	}

	RegisterRoutes(router, server)

	logger.Info("server initialized",
		"plans", len(table.All()),
		"usage_counter", cfg.UsageCounter,
		"rate_limit", ratelimit.Describe(services.Limiter),
		"redis", redisClient != nil,
		"default_model", cfg.DefaultModel,
		"token_entitlement", cfg.EntitlementJWTSecret != "",
	)

	return server, nil
}

// starts background jobs
func (s *Server) Start() error {
	if s.pruner == nil {
		return nil
	}

	return s.pruner.Start()
}

// stops background jobs and releases connections
func (s *Server) Close() {
	if s.pruner != nil {
		s.pruner.Stop()
	}

	closeRedis(s.redis)
}

func closeRedis(client *redis.Client) {
	if client != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}
}
