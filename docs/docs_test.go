package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "2.0", parsed["swagger"])

	paths := parsed["paths"].(map[string]any)
	for _, p := range []string{"/", "/api/models", "/api/status", "/api/generate", "/api/generate/batch", "/admin/health", "/admin/usage"} {
		assert.Contains(t, paths, p)
	}
}
