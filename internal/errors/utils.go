package errors

import (
	"context"
	stderrors "errors"
	"net"
	"os"
	"strings"
)

// analyzes an internal error and returns its category for log tagging
func classify(err error) string {
	if err == nil {
		return CategoryUnknown
	}

	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return CategoryTimeout
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		if netErr.Timeout() {
			return CategoryTimeout
		}

		return CategoryNetwork
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		return CategoryTimeout
	case strings.Contains(errMsg, "not found"):
		return CategoryNotFound
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial"):
		return CategoryNetwork
	case strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "required"):
		return CategoryValidation
	case strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "forbidden"):
		return CategoryAuth
	}

	return CategoryUnknown
}

// sanitizes error messages for production logs shipped off-host
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		return err.Error()
	}

	switch classify(err) {
	case CategoryTimeout:
		return "request timed out"
	case CategoryNetwork:
		return "connection error occurred"
	case CategoryNotFound:
		return "resource not found"
	case CategoryValidation:
		return "validation failed"
	case CategoryAuth:
		return "permission denied"
	}

	return "an error occurred"
}
