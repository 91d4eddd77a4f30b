package entitlement

import (
	"net/http"

	"codeberg.org/pixelgate/server/internal/plans"
)

// headers set by the API reseller in front of the gateway. all optional, all advisory.
const (
	HeaderPlan   = "X-RapidAPI-Subscription"
	HeaderUser   = "X-RapidAPI-User"
	HeaderAPIKey = "X-RapidAPI-Key"
)

// Source tells how the caller was identified
type Source string

const (
	SourceUser    Source = "user"
	SourceAPIKey  Source = "api_key"
	SourceToken   Source = "token"
	SourceAddress Source = "address"
)

// CallerContext is the typed entitlement of one request.
// the caller id is used for logging and counting only, never for authorization.
type CallerContext struct {
	Plan     plans.Plan
	CallerID string
	Source   Source
}

// Provider turns an inbound request into a CallerContext.
// implementations may leave CallerID empty when the request carries no identity;
// the middleware then falls back to the client address.
type Provider interface {
	Resolve(r *http.Request) (*CallerContext, error)
}

// gin context key holding the *CallerContext
const contextKey = "caller"
