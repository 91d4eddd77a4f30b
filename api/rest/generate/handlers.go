package generate

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/validation"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Generate one image
// @Description Validates the request against the caller's plan, forwards it to the image service and returns the image as a data URL
// @Tags generate
// @Accept json
// @Produce json
// @Param request body validation.GenerationRequest true "Generation parameters"
// @Param X-RapidAPI-Subscription header string false "Plan hint"
// @Param X-RapidAPI-User header string false "Caller id"
// @Success 200 {object} gateway.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/generate [post]
func Handler(svc *gateway.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := entitlement.FromContext(c)
		if !ok {
			errors.Respond(c, errors.ServerError(fmt.Errorf("caller context missing")))
			return
		}

		var in validation.Input
		if err := decodeBody(c, &in); err != nil {
			errors.Respond(c, err)
			return
		}

		result, err := svc.Generate(c.Request.Context(), caller, in)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// BatchHandler godoc
// @Summary Submit a batch of prompts
// @Description Acknowledges up to five prompts. Images are not generated by this endpoint.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Prompts"
// @Success 202 {object} gateway.BatchResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/generate/batch [post]
func BatchHandler(svc *gateway.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := entitlement.FromContext(c)
		if !ok {
			errors.Respond(c, errors.ServerError(fmt.Errorf("caller context missing")))
			return
		}

		var req BatchRequest
		if err := decodeBody(c, &req); err != nil {
			errors.Respond(c, err)
			return
		}

		result, err := svc.SubmitBatch(caller, req.Prompts)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusAccepted, result)
	}
}

// decodes a JSON object body. an empty body decodes to the zero value so
// field-level validation reports what is missing.
func decodeBody(c *gin.Context, v any) error {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	err := json.NewDecoder(body).Decode(v)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, stderrors.Is(err, io.EOF):
		return nil
	case stderrors.As(err, &tooLarge):
		// every legal body fits the cap, so only oversized text can overflow it
		return errors.New(errors.KindPromptTooLong,
			fmt.Sprintf("prompt must be at most %d characters", validation.MaxPromptLength)).
			With("field", "prompt").
			With("max_length", validation.MaxPromptLength).
			With("max_body_bytes", maxBodyBytes)
	default:
		return errors.InvalidRequest("request body must be a JSON object", err)
	}
}
