package upstream

import (
	"net/http"
	"time"
)

// Config configures the inference API client
type Config struct {
	BaseURL       string
	Token         string
	DefaultModel  string
	Timeout       time.Duration
	RPS           float64 // outbound requests per second across the process
	Burst         int
	MaxImageBytes int64
	HTTPClient    *http.Client // optional, mostly for tests
}

type generationPayload struct {
	Inputs     string            `json:"inputs"`
	Parameters generationOptions `json:"parameters"`
}

type generationOptions struct {
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

// error body of the inference API. error is a string or a list of strings.
type errorBody struct {
	Error         any     `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

type statusBody struct {
	Loaded bool   `json:"loaded"`
	State  string `json:"state"`
}

// Image is a generated image as returned by the inference API
type Image struct {
	Bytes []byte
	MIME  string
}

// ProbeResult describes upstream reachability for the default model
type ProbeResult struct {
	Model     string        `json:"model"`
	Reachable bool          `json:"reachable"`
	Loaded    bool          `json:"loaded"`
	State     string        `json:"state,omitempty"`
	Status    int           `json:"status,omitempty"`
	Latency   time.Duration `json:"-"`
}

// the upstream answered the probe successfully
func (r *ProbeResult) Operational() bool {
	return r.Status == http.StatusOK
}
