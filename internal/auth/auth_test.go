package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateToken_Success(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", "pro", 0)

	require.NoError(t, err)
	assert.True(t, len(token) > 50, "JWT should be reasonably long")
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	_, err := GenerateToken("", "user-123", "pro", time.Hour)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "secret not set")
}

func TestValidateToken_ValidToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", "ultra", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "ultra", claims.Plan)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	claims := Claims{
		Plan: "pro",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, tokenString)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateToken_TamperedToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", "basic", time.Hour)
	require.NoError(t, err)

	tamperedToken := token[:len(token)-5] + "XXXXX"

	_, err = ValidateToken(testSecret, tamperedToken)
	assert.Error(t, err, "tampered token should be rejected")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", "mega", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("different-secret-key", token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateToken_AlgorithmConfusionAttack(t *testing.T) {
	claims := Claims{
		Plan: "mega",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "attacker",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := ValidateToken(testSecret, tokenString)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestValidateToken_MalformedToken(t *testing.T) {
	malformedTokens := []string{
		"",
		"not.a.jwt",
		"only.two",
		"too.many.parts.in.this.token",
		"<script>alert('xss')</script>",
	}

	for _, token := range malformedTokens {
		_, err := ValidateToken(testSecret, token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func TestGenerateToken_DefaultExpiration(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", "pro", 0)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)

	expectedExpiry := time.Now().Add(DefaultTokenTTL)
	timeDiff := claims.ExpiresAt.Time.Sub(expectedExpiry).Abs()

	assert.Less(t, timeDiff, 5*time.Second, "expiration should be approximately 7 days from now")
}

func adminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin/health", AdminAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func TestAdminAuthMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{"matching secret", "s3cret", "s3cret", http.StatusOK},
		{"wrong secret", "s3cret", "guess", http.StatusForbidden},
		{"missing header", "s3cret", "", http.StatusForbidden},
		{"unconfigured secret rejects everything", "", "", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/health", nil)
			if tc.provided != "" {
				req.Header.Set(AdminSecretHeader, tc.provided)
			}

			w := httptest.NewRecorder()
			adminRouter(tc.configured).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}
