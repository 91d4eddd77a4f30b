package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/plans"
	"codeberg.org/pixelgate/server/internal/upstream"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(t *testing.T) *gateway.Result {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	return &gateway.Result{
		Success: true,
		ID:      "img_test",
		Image:   upstream.DataURL(&upstream.Image{Bytes: buf.Bytes(), MIME: "image/png"}),
		Plan:    gateway.PlanInfo{ID: "pro", Name: "Pro"},
	}
}

func newGateway(t *testing.T, handler http.HandlerFunc) *GatewayClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGatewayClient(config.Flags{
		Endpoint: server.URL,
		Plan:     "pro",
		UserID:   "user-7",
		OutDir:   t.TempDir(),
	})
}

func TestGatewayClient_GenerateSendsCallerHeaders(t *testing.T) {
	result := testResult(t)

	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "pro", r.Header.Get(entitlement.HeaderPlan))
		assert.Equal(t, "user-7", r.Header.Get(entitlement.HeaderUser))
		assert.Empty(t, r.Header.Get(entitlement.HeaderAPIKey))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a red kite", body["prompt"])
		assert.EqualValues(t, 768, body["width"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	})

	got, err := client.Generate(context.Background(), "a red kite", 768)
	require.NoError(t, err)
	assert.Equal(t, "img_test", got.ID)
}

func TestGatewayClient_ErrorEnvelope(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(errors.ErrorResponse{ //nolint:errcheck
			Error:   errors.KindPlanLimitExceeded,
			Message: "1024x1024 exceeds the Basic plan limit of 512x512",
		})
	})

	_, err := client.Generate(context.Background(), "a castle", 1024)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, errors.KindPlanLimitExceeded, apiErr.Response.Error)
}

func TestGatewayClient_NonEnvelopeError(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Plans(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSaveImage_UsesMIMEExtension(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := SaveImage(testResult(t), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "img_test.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestSaveImage_RejectsNonDataURL(t *testing.T) {
	_, err := SaveImage(&gateway.Result{ID: "img_x", Image: "https://example.com/a.png"}, t.TempDir())
	assert.Error(t, err)
}

func TestPlanTable(t *testing.T) {
	out := planTable(plans.Default().All())

	assert.Contains(t, out, "| Basic | 512x512 | $0.00 | 10 |")
	assert.Contains(t, out, "| Pro | 768x768 | $9.99 | 100 |")
}

func TestGenerator_SubmitAndResult(t *testing.T) {
	g := NewGenerator(NewGatewayClient(config.DefaultTUIFlags()), t.TempDir())

	g.input.SetValue("  ")
	g, cmd := g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, g.isFetching)

	g.input.SetValue("a quiet harbor")
	g, cmd = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, g.isFetching)
	assert.Empty(t, g.input.Value())

	result := testResult(t)
	g, _ = g.Update(GenerateResultMsg{result: result, savedPath: "out/img_test.png"})
	assert.False(t, g.isFetching)
	assert.Contains(t, g.View(), "saved out/img_test.png")
	assert.Contains(t, g.View(), "a quiet harbor")
}

func TestGenerator_ErrorShowsKind(t *testing.T) {
	g := NewGenerator(NewGatewayClient(config.DefaultTUIFlags()), t.TempDir())

	g, _ = g.Update(GenerateErrorMsg{err: &APIError{
		Status:   http.StatusTooManyRequests,
		Response: errors.ErrorResponse{Error: errors.KindDailyLimitExceeded, Message: "daily generation limit reached"},
	}})

	assert.Contains(t, g.View(), "daily_limit_exceeded")
}

func TestGenerator_CyclesSize(t *testing.T) {
	g := NewGenerator(NewGatewayClient(config.DefaultTUIFlags()), t.TempDir())
	assert.Equal(t, 512, g.Size())

	for _, want := range []int{768, 1024, 512} {
		g, _ = g.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		assert.Equal(t, want, g.Size())
	}
}

func TestModel_CtrlCNavigation(t *testing.T) {
	m := NewApp(config.DefaultTUIFlags())

	next, _ := m.Update(EnterGeneratorMsg{})
	m = next.(*Model)
	assert.Equal(t, StateGenerator, m.state)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(*Model)
	assert.Equal(t, StateWelcome, m.state)
	assert.Nil(t, cmd)

	m.Update(ErrorMsg{err: assert.AnError})
	assert.Contains(t, m.View(), "Error")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NoError(t, m.err)
}

func TestWelcome_UnknownCommand(t *testing.T) {
	w := NewWelcome("http://localhost:8080", "")
	client := NewGatewayClient(config.DefaultTUIFlags())

	for _, r := range "dance" {
		w, _ = w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, client)
	}

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter}, client)
	require.NotNil(t, cmd)

	msg, ok := cmd().(ErrorMsg)
	require.True(t, ok)
	assert.Contains(t, msg.err.Error(), "unknown command: dance")
	assert.Empty(t, w.input)
}

func TestWelcome_PlansLoaded(t *testing.T) {
	w := NewWelcome("http://localhost:8080", "pro")
	w, _ = w.Update(PlansLoadedMsg{plans: plans.Default().All()}, nil)

	assert.NotEmpty(t, w.plans)
	assert.Contains(t, w.View(), "plan: pro")
}
