package generate

import "encoding/json"

// BatchRequest is the body of a batch submission
type BatchRequest struct {
	Prompts json.RawMessage `json:"prompts"`
}

// largest accepted request body. a fully escaped prompt and negative prompt
// at the length limit stay well below it.
const maxBodyBytes = 64 << 10
