package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router(t *testing.T, client *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := New("2-M", client)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Middleware(l, "/"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/models", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func call(r *gin.Engine, path, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = addr + ":1234"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_EnforcesBudgetPerAddress(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() }) //nolint:errcheck

	stores := map[string]*redis.Client{"memory": nil, "redis": client}

	for name, c := range stores {
		t.Run(name, func(t *testing.T) {
			r := router(t, c)
			addr := "198.51.100.1"
			if c != nil {
				addr = "198.51.100.2"
			}

			for i := range 2 {
				w := call(r, "/api/models", addr)
				assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
				assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			}

			w := call(r, "/api/models", addr)
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"rate_limited"`)
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

			// a different address has its own budget
			assert.Equal(t, http.StatusOK, call(r, "/api/models", "192.0.2.99").Code)
		})
	}
}

func TestMiddleware_ExemptPathsNotCounted(t *testing.T) {
	r := router(t, nil)

	for range 5 {
		w := call(r, "/", "203.0.113.5")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, http.StatusOK, call(r, "/api/models", "203.0.113.5").Code)
}

func TestNew_InvalidRate(t *testing.T) {
	_, err := New("sixty-per-minute", nil)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	l, err := New("60-M", nil)
	require.NoError(t, err)
	assert.Equal(t, "60 per 1m0s", Describe(l))
}
