package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized    = errors.New("upstream rejected credentials")
	ErrPaymentRequired = errors.New("upstream requires payment")
	ErrRateLimited     = errors.New("upstream rate limited")
	ErrModelLoading    = errors.New("model loading")
	ErrModelNotFound   = errors.New("model not found")
	ErrUpstream        = errors.New("upstream error")
	ErrNetwork         = errors.New("upstream unreachable")
)

// Error is an upstream failure. Err is one of the sentinels above.
type Error struct {
	Status        int // 0 when no response was received
	Message       string
	EstimatedTime float64 // seconds, only for ErrModelLoading
	Err           error
	cause         error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%v (status %d): %s", e.Err, e.Status, e.Message)
	}

	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}

	return []error{e.Err}
}

// maximum length of an error message extracted from an upstream body
const maxMessageLen = 300

// converts a non-2xx response into an *Error with the matching sentinel
func normalizeError(status int, body []byte) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed) //nolint:errcheck // best effort

	message := extractMessage(parsed.Error)
	if message == "" {
		message = http.StatusText(status)
	}

	var sentinel error
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrUnauthorized
	case http.StatusPaymentRequired:
		sentinel = ErrPaymentRequired
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case http.StatusServiceUnavailable:
		sentinel = ErrModelLoading
	case http.StatusNotFound:
		sentinel = ErrModelNotFound
	default:
		sentinel = ErrUpstream
	}

	return &Error{
		Status:        status,
		Message:       message,
		EstimatedTime: parsed.EstimatedTime,
		Err:           sentinel,
	}
}

func extractMessage(v any) string {
	var msg string

	switch e := v.(type) {
	case string:
		msg = e
	case []any:
		parts := make([]string, 0, len(e))
		for _, item := range e {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		msg = strings.Join(parts, "; ")
	}

	msg = strings.TrimSpace(msg)
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}

	return msg
}

func newNetworkError(err error) error {
	return &Error{
		Message: "request failed",
		Err:     ErrNetwork,
		cause:   err,
	}
}

func newUpstreamError(status int, message string) error {
	return &Error{
		Status:  status,
		Message: message,
		Err:     ErrUpstream,
	}
}
