package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"codeberg.org/pixelgate/server/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = "stabilityai/stable-diffusion-xl-base-1.0"

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testRequest() *validation.GenerationRequest {
	return &validation.GenerationRequest{
		Prompt:         "a red cat",
		NegativePrompt: "blurry",
		Width:          512,
		Height:         512,
		Steps:          30,
		GuidanceScale:  7.5,
		Model:          testModel,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		BaseURL:      srv.URL,
		Token:        "hf_test",
		DefaultModel: testModel,
		Timeout:      5 * time.Second,
	})
}

func TestGenerate_Success(t *testing.T) {
	imageBytes := testPNG(t)

	var received generationPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/"+testModel, r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(imageBytes) //nolint:errcheck
	})

	img, err := client.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, imageBytes, img.Bytes)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, "a red cat", received.Inputs)
	assert.Equal(t, "blurry", received.Parameters.NegativePrompt)
	assert.Equal(t, 512, received.Parameters.Width)
	assert.Equal(t, 30, received.Parameters.NumInferenceSteps)
	assert.InDelta(t, 7.5, received.Parameters.GuidanceScale, 1e-9)
}

func TestGenerate_StatusMapping(t *testing.T) {
	testCases := []struct {
		status   int
		body     string
		sentinel error
		message  string
	}{
		{http.StatusUnauthorized, `{"error":"Invalid credentials in Authorization header"}`, ErrUnauthorized, "Invalid credentials in Authorization header"},
		{http.StatusForbidden, ``, ErrUnauthorized, "Forbidden"},
		{http.StatusPaymentRequired, `{"error":"You have exceeded your monthly credits"}`, ErrPaymentRequired, "You have exceeded your monthly credits"},
		{http.StatusTooManyRequests, `{"error":["Rate limit reached","retry later"]}`, ErrRateLimited, "Rate limit reached; retry later"},
		{http.StatusNotFound, `not json`, ErrModelNotFound, "Not Found"},
		{http.StatusInternalServerError, `{"error":"boom"}`, ErrUpstream, "boom"},
		{http.StatusTeapot, ``, ErrUpstream, "I'm a teapot"},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body) //nolint:errcheck
			})

			_, err := client.Generate(context.Background(), testRequest())

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var upErr *Error
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tc.status, upErr.Status)
			assert.Equal(t, tc.message, upErr.Message)
		})
	}
}

func TestGenerate_ModelLoadingCarriesEstimate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"Model is currently loading","estimated_time":42.5}`) //nolint:errcheck
	})

	_, err := client.Generate(context.Background(), testRequest())

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.ErrorIs(t, err, ErrModelLoading)
	assert.InDelta(t, 42.5, upErr.EstimatedTime, 1e-9)
}

func TestGenerate_UnsniffableBytesKeepDeclaredType(t *testing.T) {
	raw := []byte("X-raw-image-bytes-from-stub")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write(raw) //nolint:errcheck
	})

	img, err := client.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "image/webp", img.MIME)

	decoded, err := DecodeDataURL(DataURL(img))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded.Bytes)
}

func TestGenerate_UnknownBodyFallsBackToPNG(t *testing.T) {
	raw := []byte(`{"generated":"not really"}`)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw) //nolint:errcheck
	})

	img, err := client.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, raw, img.Bytes)
}

func TestGenerate_EmptyBodyIsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Generate(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestImageMIME(t *testing.T) {
	pngMagic := []byte("\x89PNG\r\n\x1a\n")

	assert.Equal(t, "image/png", imageMIME(pngMagic, "image/jpeg"))
	assert.Equal(t, "image/jpeg", imageMIME([]byte("stub"), "Image/JPEG; charset=binary"))
	assert.Equal(t, "image/png", imageMIME([]byte("stub"), "text/plain; charset=utf-8"))
	assert.Equal(t, "image/png", imageMIME([]byte("stub"), ""))
}

func TestGenerate_OversizedImageRejected(t *testing.T) {
	imageBytes := testPNG(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(imageBytes) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	client := New(Config{BaseURL: srv.URL, DefaultModel: testModel, MaxImageBytes: int64(len(imageBytes) - 1)})

	_, err := client.Generate(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(Config{BaseURL: url, DefaultModel: testModel, Timeout: time.Second})

	_, err := client.Generate(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestGenerate_TimeoutIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.config.Timeout = 50 * time.Millisecond

	_, err := client.Generate(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerate_ExactlyOneCallNoRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Generate(context.Background(), testRequest())

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProbe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/status/"+testModel, r.URL.Path)
		_, _ = io.WriteString(w, `{"loaded":true,"state":"Loaded"}`) //nolint:errcheck
	})

	result, err := client.Probe(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Reachable)
	assert.True(t, result.Loaded)
	assert.True(t, result.Operational())
	assert.Equal(t, "Loaded", result.State)
	assert.Equal(t, testModel, result.Model)
}

func TestProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	result, err := New(Config{BaseURL: url, DefaultModel: testModel}).Probe(context.Background())

	require.NoError(t, err)
	assert.False(t, result.Reachable)
	assert.False(t, result.Operational())
}

func TestDataURLRoundTrip(t *testing.T) {
	original := &Image{Bytes: testPNG(t), MIME: "image/png"}

	url := DataURL(original)
	assert.Contains(t, url, "data:image/png;base64,")

	decoded, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	_, err = DecodeDataURL("https://example.com/cat.png")
	assert.Error(t, err)

	_, err = DecodeDataURL("data:image/png,raw")
	assert.Error(t, err)
}
