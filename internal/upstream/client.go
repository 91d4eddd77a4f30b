package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/pixelgate/server/internal/validation"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout       = 120 * time.Second
	defaultMaxImageBytes = 20 << 20
	probeTimeout         = 10 * time.Second
	maxErrorBodyBytes    = 64 << 10
	defaultImageMIME     = "image/png"
)

// Client talks to the text-to-image inference API. one call per generation, no retries.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	if config.MaxImageBytes <= 0 {
		config.MaxImageBytes = defaultMaxImageBytes
	}

	if config.Burst <= 0 {
		config.Burst = 1
	}

	limit := rate.Inf
	if config.RPS > 0 {
		limit = rate.Limit(config.RPS)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// the per-call deadline comes from the context; the client timeout is a backstop
		httpClient = &http.Client{
			Timeout: config.Timeout + 5*time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, config.Burst),
	}
}

func (c *Client) DefaultModel() string {
	return c.config.DefaultModel
}

// generates one image. the call is bounded by the configured timeout.
func (c *Client) Generate(ctx context.Context, req *validation.GenerationRequest) (*Image, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	jsonData, err := json.Marshal(generationPayload{
		Inputs: req.Prompt,
		Parameters: generationOptions{
			NegativePrompt:    req.NegativePrompt,
			Width:             req.Width,
			Height:            req.Height,
			NumInferenceSteps: req.Steps,
			GuidanceScale:     req.GuidanceScale,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("models", req.Model), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "image/png")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)

	// outbound throttle shared by every caller of this process
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Message: "outbound request budget exhausted", Err: ErrRateLimited, cause: err}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck
		return nil, normalizeError(resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxImageBytes+1))
	if err != nil {
		return nil, newNetworkError(err)
	}

	if int64(len(data)) > c.config.MaxImageBytes {
		return nil, newUpstreamError(resp.StatusCode, fmt.Sprintf("image exceeds %d bytes", c.config.MaxImageBytes))
	}

	if len(data) == 0 {
		return nil, newUpstreamError(resp.StatusCode, "empty response body")
	}

	return &Image{Bytes: data, MIME: imageMIME(data, resp.Header.Get("Content-Type"))}, nil
}

// picks the data URL type: sniffed bytes first, then the declared header, then png
func imageMIME(data []byte, declared string) string {
	if sniffed := mimetype.Detect(data); isImage(sniffed.String()) {
		return baseMIME(sniffed.String())
	}

	if isImage(declared) {
		return baseMIME(declared)
	}

	return defaultImageMIME
}

func isImage(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "image/")
}

// strips parameters such as "; charset=..."
func baseMIME(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// checks whether the inference API answers for the default model.
// transport failures are reported as unreachable rather than returned.
func (c *Client) Probe(ctx context.Context) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	result := &ProbeResult{Model: c.config.DefaultModel}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("status", c.config.DefaultModel), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	result.Latency = time.Since(start)

	if err != nil {
		return result, nil
	}

	defer resp.Body.Close() //nolint:errcheck

	result.Status = resp.StatusCode
	result.Reachable = resp.StatusCode < http.StatusInternalServerError

	if resp.StatusCode == http.StatusOK {
		var status statusBody
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&status); err == nil {
			result.Loaded = status.Loaded
			result.State = status.State
		}
	}

	return result, nil
}

// joins the base URL with a route and a model id; model ids keep their slash
func (c *Client) endpoint(route, model string) string {
	segments := strings.Split(model, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return strings.TrimRight(c.config.BaseURL, "/") + "/" + route + "/" + strings.Join(segments, "/")
}
