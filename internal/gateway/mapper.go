package gateway

import (
	stderrors "errors"

	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/upstream"
)

// translates an inference API failure into the client taxonomy.
// the upstream message is passed on only where it helps the caller act.
func mapUpstreamError(err error, model string) *errors.Error {
	var upErr *upstream.Error
	if !stderrors.As(err, &upErr) {
		return errors.ServerError(err)
	}

	var kind errors.Kind
	passMessage := true

	switch {
	case stderrors.Is(err, upstream.ErrUnauthorized):
		kind = errors.KindInvalidAPIToken
		passMessage = false
	case stderrors.Is(err, upstream.ErrPaymentRequired):
		kind = errors.KindPaymentRequired
		passMessage = false
	case stderrors.Is(err, upstream.ErrRateLimited):
		kind = errors.KindRateLimited
	case stderrors.Is(err, upstream.ErrModelLoading):
		kind = errors.KindModelLoading
	case stderrors.Is(err, upstream.ErrModelNotFound):
		kind = errors.KindModelNotFound
	case stderrors.Is(err, upstream.ErrNetwork):
		kind = errors.KindNetworkError
		passMessage = false
	default:
		kind = errors.KindUpstreamError
	}

	e := errors.Wrap(kind, "", err).With("model", model)

	if passMessage && upErr.Message != "" {
		e.With("upstream_message", upErr.Message)
	}

	if kind == errors.KindModelLoading && upErr.EstimatedTime > 0 {
		e.With("estimated_time", upErr.EstimatedTime)
	}

	return e
}
