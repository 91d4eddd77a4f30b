package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/pixelgate/server/internal/plans"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/", Handler(plans.Default(), "1.2.3"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	require.Len(t, resp.Plans, 4)
	assert.Equal(t, "basic", resp.Plans[0].ID)
	assert.Equal(t, 512, resp.Plans[0].MaxDimension)
	assert.Contains(t, w.Body.String(), `"max_resolution":768`)
}
