package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents entitlement token claims issued by the reseller platform.
// the caller id travels in the registered subject claim.
type Claims struct {
	Plan string `json:"plan"`
	jwt.RegisteredClaims
}

// header carrying the operator secret for /admin routes
const AdminSecretHeader = "X-Admin-Secret"
