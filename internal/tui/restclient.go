package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/pixelgate/server/api/rest/health"
	"codeberg.org/pixelgate/server/api/rest/status"
	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/upstream"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"
)

const (
	generateRequestTimeout = 150 * time.Second
	metaRequestTimeout     = 10 * time.Second
)

// manages HTTP requests to the gateway REST API
type GatewayClient struct {
	flags      config.Flags
	httpClient *http.Client
}

// APIError is a failure envelope returned by the gateway
type APIError struct {
	Status   int
	Response errors.ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Response.Error, e.Response.Message)
}

// creates a new gateway REST client
func NewGatewayClient(flags config.Flags) *GatewayClient {
	return &GatewayClient{
		flags:      flags,
		httpClient: &http.Client{Timeout: generateRequestTimeout},
	}
}

// fetches the public plan table from the root endpoint
func (c *GatewayClient) Plans(ctx context.Context) (*health.Response, error) {
	var out health.Response
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// probes upstream availability through the gateway
func (c *GatewayClient) Status(ctx context.Context) (*status.Response, error) {
	var out status.Response
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// sends one generation request
func (c *GatewayClient) Generate(ctx context.Context, prompt string, size int) (*gateway.Result, error) {
	payload, err := json.Marshal(map[string]any{
		"prompt": prompt,
		"width":  size,
		"height": size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out gateway.Result
	if err := c.do(ctx, http.MethodPost, "/api/generate", payload, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *GatewayClient) do(ctx context.Context, method, path string, payload []byte, out any) error {
	url := strings.TrimRight(c.flags.Endpoint, "/") + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCallerHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, &apiErr.Response); err != nil || apiErr.Response.Error == "" {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (c *GatewayClient) setCallerHeaders(req *http.Request) {
	if c.flags.Plan != "" {
		req.Header.Set(entitlement.HeaderPlan, c.flags.Plan)
	}

	if c.flags.UserID != "" {
		req.Header.Set(entitlement.HeaderUser, c.flags.UserID)
	}

	if c.flags.APIKey != "" {
		req.Header.Set(entitlement.HeaderAPIKey, c.flags.APIKey)
	}
}

// returns a tea.Cmd that fetches the plan table
func (c *GatewayClient) PlansCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaRequestTimeout)
		defer cancel()

		resp, err := c.Plans(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return PlansLoadedMsg{plans: resp.Plans}
	}
}

// returns a tea.Cmd that probes upstream status
func (c *GatewayClient) StatusCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaRequestTimeout)
		defer cancel()

		resp, err := c.Status(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return StatusLoadedMsg{status: formatStatus(resp)}
	}
}

// returns a tea.Cmd that generates an image and saves it into outDir
func (c *GatewayClient) GenerateCmd(prompt string, size int, outDir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		result, err := c.Generate(ctx, prompt, size)
		if err != nil {
			return GenerateErrorMsg{err: err}
		}

		path, err := SaveImage(result, outDir)
		if err != nil {
			return GenerateErrorMsg{err: err}
		}

		return GenerateResultMsg{result: result, savedPath: path}
	}
}

// decodes the result's data URL and writes the image as <id><ext> into dir
func SaveImage(result *gateway.Result, dir string) (string, error) {
	img, err := upstream.DecodeDataURL(result.Image)
	if err != nil {
		return "", err
	}

	// trust the declared type when known, sniff otherwise
	ext := mimetype.Detect(img.Bytes).Extension()
	if mime := mimetype.Lookup(img.MIME); mime != nil {
		ext = mime.Extension()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, result.ID+ext)
	if err := os.WriteFile(path, img.Bytes, 0o644); err != nil { //nolint:gosec // generated images are not secrets
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return path, nil
}
