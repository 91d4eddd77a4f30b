package errors

// identifies one entry of the client-facing error taxonomy
type Kind string

const (
	KindPromptRequired     Kind = "prompt_required"
	KindPromptTooLong      Kind = "prompt_too_long"
	KindInvalidDimensions  Kind = "invalid_dimensions"
	KindInvalidRequest     Kind = "invalid_request"
	KindPlanLimitExceeded  Kind = "plan_limit_exceeded"
	KindDailyLimitExceeded Kind = "daily_limit_exceeded"
	KindInvalidAPIToken    Kind = "invalid_api_token"
	KindPaymentRequired    Kind = "payment_required"
	KindRateLimited        Kind = "rate_limited"
	KindModelLoading       Kind = "model_loading"
	KindModelNotFound      Kind = "model_not_found"
	KindUpstreamError      Kind = "upstream_error"
	KindNetworkError       Kind = "network_error"
	KindServerError        Kind = "server_error"
	KindEndpointNotFound   Kind = "endpoint_not_found"
	KindUnauthorized       Kind = "unauthorized"
)

// ErrorResponse is the wire shape of every failed call
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   Kind           `json:"error"`             // machine-readable kind, e.g. "prompt_required"
	Message string         `json:"message"`           // human-readable message
	Details map[string]any `json:"details,omitempty"` // kind-specific context
}

// error categories, used to tag server-side log lines
const (
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)
