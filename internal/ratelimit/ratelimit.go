package ratelimit

import (
	"fmt"
	"strconv"

	"codeberg.org/pixelgate/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "pixelgate:ratelimit"

// builds a limiter from a formatted rate such as "60-M".
// a nil client keeps the counters in process memory.
func New(formatted string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	if client == nil {
		return limiter.New(memory.NewStore(), rate), nil
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   storePrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	return limiter.New(store, rate), nil
}

// gin middleware enforcing the per-address budget. exempt paths are never counted.
func Middleware(l *limiter.Limiter, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(exempt))
	for _, path := range exempt {
		skip[path] = true
	}

	handler := mgin.NewMiddleware(l,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.Respond(c, errors.RateLimited("request budget exceeded, retry after the window resets").
				With("limit", l.Rate.Limit).
				With("reset", c.Writer.Header().Get("X-RateLimit-Reset")))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			errors.Respond(c, errors.ServerError(fmt.Errorf("rate limit store: %w", err)))
		}),
	)

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		handler(c)
	}
}

// formats a limiter rate for display, e.g. "60 per 1m0s"
func Describe(l *limiter.Limiter) string {
	return strconv.FormatInt(l.Rate.Limit, 10) + " per " + l.Rate.Period.String()
}
