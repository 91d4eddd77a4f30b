package main

import (
	"fmt"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/logger"
	"codeberg.org/pixelgate/server/internal/plans"
	"codeberg.org/pixelgate/server/internal/ratelimit"
	"codeberg.org/pixelgate/server/internal/upstream"
	"codeberg.org/pixelgate/server/internal/usage"
	"codeberg.org/pixelgate/server/internal/validation"
	"github.com/redis/go-redis/v9"
)

// creates and configures all service clients. redisClient may be nil.
func InitializeServices(cfg *config.Config, table *plans.Table, redisClient *redis.Client) (*Services, error) {
	upstreamClient := upstream.New(upstream.Config{
		BaseURL:       cfg.UpstreamBaseURL,
		Token:         cfg.UpstreamAPIToken,
		DefaultModel:  cfg.DefaultModel,
		Timeout:       cfg.UpstreamTimeout,
		RPS:           cfg.UpstreamRPS,
		Burst:         cfg.UpstreamBurst,
		MaxImageBytes: cfg.UpstreamMaxImageBytes,
	})

	var counter usage.Counter
	switch cfg.UsageCounter {
	case config.CounterMemory:
		counter = usage.NewMemoryCounter()
	case config.CounterRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis usage counter requires REDIS_URL")
		}
		counter = usage.NewRedisCounter(redisClient)
	case config.CounterOff:
		logger.Warn("daily usage limits disabled")
	}

	lim, err := ratelimit.New(cfg.RateLimit, redisClient)
	if err != nil {
		return nil, err
	}

	var provider entitlement.Provider = entitlement.NewHeaderProvider(table)
	if cfg.EntitlementJWTSecret != "" {
		provider = entitlement.NewTokenProvider(cfg.EntitlementJWTSecret, table)
	}

	validator := validation.New(table, cfg.DefaultModel)

	return &Services{
		Upstream:    upstreamClient,
		Gateway:     gateway.NewService(table, validator, upstreamClient, counter),
		Counter:     counter,
		Limiter:     lim,
		Entitlement: provider,
	}, nil
}
