package entitlement

import (
	"codeberg.org/pixelgate/server/internal/logger"
	"codeberg.org/pixelgate/server/internal/plans"
	"github.com/gin-gonic/gin"
)

// resolves the caller once per request and stores it on the gin context
func Middleware(provider Provider, table *plans.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := provider.Resolve(c.Request)
		if err != nil {
			logger.Warn("entitlement degraded to default plan",
				"path", c.Request.URL.Path,
				"error", err,
			)
		}

		if caller == nil {
			caller = &CallerContext{Plan: table.DefaultPlan()}
		}

		if caller.CallerID == "" {
			caller.CallerID = c.ClientIP()
			caller.Source = SourceAddress
		}

		c.Set(contextKey, caller)
		c.Next()
	}
}

// returns the caller stored by Middleware
func FromContext(c *gin.Context) (*CallerContext, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}

	caller, ok := v.(*CallerContext)
	return caller, ok
}
