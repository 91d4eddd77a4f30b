package entitlement

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/pixelgate/server/internal/auth"
	"codeberg.org/pixelgate/server/internal/plans"
)

var ErrInvalidToken = errors.New("invalid entitlement token")

// TokenProvider reads a signed entitlement token from the Authorization header.
// requests without a bearer token are resolved by the header provider.
type TokenProvider struct {
	secret   string
	plans    *plans.Table
	fallback *HeaderProvider
}

func NewTokenProvider(secret string, table *plans.Table) *TokenProvider {
	return &TokenProvider{
		secret:   secret,
		plans:    table,
		fallback: NewHeaderProvider(table),
	}
}

// an invalid token yields the default plan together with an ErrInvalidToken error,
// so callers can log it without failing the request
func (p *TokenProvider) Resolve(r *http.Request) (*CallerContext, error) {
	token, ok := bearerToken(r)
	if !ok {
		return p.fallback.Resolve(r)
	}

	claims, err := auth.ValidateToken(p.secret, token)
	if err != nil {
		caller := &CallerContext{Plan: p.plans.DefaultPlan()}
		caller.CallerID, caller.Source = identify(r)
		return caller, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	caller := &CallerContext{
		Plan:     p.plans.Resolve(claims.Plan),
		CallerID: claims.Subject,
		Source:   SourceToken,
	}

	if caller.CallerID == "" {
		caller.CallerID, caller.Source = identify(r)
	}

	return caller, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
