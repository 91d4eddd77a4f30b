package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"codeberg.org/pixelgate/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP handlers:
//   - Build failures with the constructors below and hand them to Respond.
//     Respond owns both the wire rendering and the server-side log line.
//   - Anything that is not an *Error is rendered as server_error without details.
//
// For services and internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err),
//     or an *Error when the failure already has a client-facing kind.
//   - Do not log in non-handler code (avoid double logging).

// Error is the single tagged failure type of the gateway.
// Kind selects the taxonomy entry; Err keeps the internal cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// returns the HTTP status for the error kind
func (e *Error) Status() int {
	return StatusFor(e.Kind)
}

// adds one detail field and returns the same error
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}

	e.Details[key] = value
	return e
}

var statusByKind = map[Kind]int{
	KindPromptRequired:     http.StatusBadRequest,
	KindPromptTooLong:      http.StatusBadRequest,
	KindInvalidDimensions:  http.StatusBadRequest,
	KindInvalidRequest:     http.StatusBadRequest,
	KindPlanLimitExceeded:  http.StatusForbidden,
	KindDailyLimitExceeded: http.StatusTooManyRequests,
	KindInvalidAPIToken:    http.StatusUnauthorized,
	KindPaymentRequired:    http.StatusPaymentRequired,
	KindRateLimited:        http.StatusTooManyRequests,
	KindModelLoading:       http.StatusServiceUnavailable,
	KindModelNotFound:      http.StatusNotFound,
	KindUpstreamError:      http.StatusBadGateway,
	KindNetworkError:       http.StatusBadGateway,
	KindServerError:        http.StatusInternalServerError,
	KindEndpointNotFound:   http.StatusNotFound,
	KindUnauthorized:       http.StatusForbidden,
}

var defaultMessages = map[Kind]string{
	KindPromptRequired:     "prompt is required and must be text",
	KindPromptTooLong:      "prompt is too long",
	KindInvalidDimensions:  "width and height must be numbers between 64 and 1024",
	KindInvalidRequest:     "invalid request",
	KindPlanLimitExceeded:  "requested resolution exceeds your plan limit",
	KindDailyLimitExceeded: "daily generation limit reached for your plan",
	KindInvalidAPIToken:    "the image service rejected the gateway credentials",
	KindPaymentRequired:    "the image service requires payment to continue",
	KindRateLimited:        "too many requests, please slow down",
	KindModelLoading:       "the model is loading, please retry shortly",
	KindModelNotFound:      "the requested model was not found",
	KindUpstreamError:      "the image service returned an unexpected error",
	KindNetworkError:       "could not reach the image service",
	KindServerError:        "an unexpected error occurred",
	KindEndpointNotFound:   "endpoint not found",
	KindUnauthorized:       "invalid or missing admin secret",
}

// returns the HTTP status for a kind; unknown kinds are server errors
func StatusFor(kind Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// creates an error of the given kind; an empty message selects the default one
func New(kind Kind, message string) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}

	return &Error{Kind: kind, Message: message}
}

// wraps an internal cause into an error of the given kind
func Wrap(kind Kind, message string, err error) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

// extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func PromptRequired() *Error {
	return New(KindPromptRequired, "")
}

func PromptTooLong(field string, limit, length int) *Error {
	return New(KindPromptTooLong, fmt.Sprintf("%s must be at most %d characters", field, limit)).
		With("field", field).
		With("max_length", limit).
		With("length", length)
}

func InvalidDimensions(message string) *Error {
	return New(KindInvalidDimensions, message)
}

func InvalidRequest(message string, err error) *Error {
	return Wrap(KindInvalidRequest, message, err)
}

// hint is a human-readable upgrade suggestion; suggested is empty for the top tier
func PlanLimitExceeded(plan string, limit, width, height int, suggested, hint string) *Error {
	e := New(KindPlanLimitExceeded, fmt.Sprintf("%dx%d exceeds the %s plan limit of %dx%d", width, height, plan, limit, limit)).
		With("current_plan", plan).
		With("max_resolution", limit).
		With("requested_width", width).
		With("requested_height", height).
		With("upgrade_hint", hint)

	if suggested != "" {
		e.With("suggested_plan", suggested)
	}

	return e
}

func ModelNotFound(model string) *Error {
	return New(KindModelNotFound, fmt.Sprintf("model %q is not offered; see /api/models", model)).
		With("model", model)
}

func DailyLimitExceeded(plan string, limit, used int64) *Error {
	return New(KindDailyLimitExceeded, "").
		With("current_plan", plan).
		With("daily_limit", limit).
		With("used", used)
}

func RateLimited(message string) *Error {
	return New(KindRateLimited, message)
}

func ServerError(err error) *Error {
	return Wrap(KindServerError, "", err)
}

func EndpointNotFound(method, path string) *Error {
	return New(KindEndpointNotFound, "").
		With("method", method).
		With("path", path)
}

func Unauthorized() *Error {
	return New(KindUnauthorized, "")
}

// renders err to the wire, logs it, and aborts the gin chain.
// this is the only place failure envelopes are built.
func Respond(c *gin.Context, err error) {
	e, ok := As(err)
	if !ok {
		e = ServerError(err)
	}

	status := e.Status()
	response := ErrorResponse{
		Success: false,
		Error:   e.Kind,
		Message: e.Message,
		Details: e.Details,
	}

	if e.Kind == KindServerError {
		// never disclose internal detail for unexpected faults
		response.Message = defaultMessages[KindServerError]
		response.Details = nil
	}

	args := []any{
		"kind", e.Kind,
		"status", status,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	}

	switch {
	case status >= http.StatusInternalServerError:
		args = append(args, "category", classify(e.Err))
		logger.ErrorErr(e.Err, "request failed", args...)
	case e.Err != nil:
		logger.Warn("request rejected", append(args, "error", sanitizeError(e.Err))...)
	default:
		logger.Debug("request rejected", args...)
	}

	_ = c.Error(e) //nolint:errcheck // recorded for request logging middleware
	c.AbortWithStatusJSON(status, response)
}

// gin recovery handler rendering panics as server_error
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		Respond(c, ServerError(fmt.Errorf("panic: %v", recovered)))
	})
}

// gin NoRoute handler
func NoRoute(c *gin.Context) {
	Respond(c, EndpointNotFound(c.Request.Method, c.Request.URL.Path))
}
