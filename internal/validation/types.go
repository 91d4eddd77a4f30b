package validation

import "encoding/json"

// Input holds the untrusted wire fields of a generation call.
// fields stay raw so numbers sent as strings can be coerced and bad types reported in order.
type Input struct {
	Prompt         json.RawMessage `json:"prompt"`
	NegativePrompt json.RawMessage `json:"negative_prompt"`
	Width          json.RawMessage `json:"width"`
	Height         json.RawMessage `json:"height"`
	Steps          json.RawMessage `json:"steps"`
	GuidanceScale  json.RawMessage `json:"guidance_scale"`
	Model          json.RawMessage `json:"model"`
}

// GenerationRequest is a validated, normalized generation job
type GenerationRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	GuidanceScale  float64 `json:"guidance_scale"`
	Model          string  `json:"model"`
}

const (
	MaxPromptLength = 1500
	MaxBatchPrompts = 5

	DefaultDimension = 512
	DefaultSteps     = 30
	DefaultGuidance  = 7.5

	MinSteps    = 1
	MaxSteps    = 50
	MinGuidance = 1.0
	MaxGuidance = 20.0

	// unknown model ids are echoed back in the error, cut to this many runes
	maxEchoedModelLength = 100
)
