package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codeberg.org/pixelgate/server/internal/entitlement"
	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/logger"
	"codeberg.org/pixelgate/server/internal/metrics"
	"codeberg.org/pixelgate/server/internal/plans"
	"codeberg.org/pixelgate/server/internal/upstream"
	"codeberg.org/pixelgate/server/internal/usage"
	"codeberg.org/pixelgate/server/internal/validation"
)

// prompts are logged truncated
const logPromptLen = 80

// Service runs a generation call: validate, count, call upstream, shape the envelope
type Service struct {
	plans     *plans.Table
	validator *validation.Validator
	generator Generator
	counter   usage.Counter // nil disables daily limits
	now       func() time.Time
}

func NewService(table *plans.Table, validator *validation.Validator, generator Generator, counter usage.Counter) *Service {
	return &Service{
		plans:     table,
		validator: validator,
		generator: generator,
		counter:   counter,
		now:       time.Now,
	}
}

// generates one image for the caller. validation always runs before the
// daily counter and the counter always runs before the outbound call.
func (s *Service) Generate(ctx context.Context, caller *entitlement.CallerContext, in validation.Input) (*Result, error) {
	plan := caller.Plan

	req, err := s.validator.Validate(in, plan)
	if err != nil {
		s.reject(plan, err)
		return nil, err
	}

	now := s.now()

	var used *Usage
	if s.counter != nil {
		used, err = s.count(ctx, caller, now)
		if err != nil {
			s.reject(plan, err)
			return nil, err
		}
	}

	log := logger.With("caller_id", caller.CallerID, "plan", plan.ID, "model", req.Model)
	log.Debug("generating image",
		"prompt", logger.Truncate(req.Prompt, logPromptLen),
		"width", req.Width,
		"height", req.Height,
	)

	start := time.Now()
	img, err := s.generator.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		mapped := mapUpstreamError(err, req.Model)
		metrics.RecordUpstreamCall(req.Model, string(mapped.Kind), elapsed.Seconds())
		return nil, mapped
	}

	metrics.RecordUpstreamCall(req.Model, "success", elapsed.Seconds())
	metrics.RecordGeneration(plan.ID)

	log.Info("image generated", "duration_ms", elapsed.Milliseconds(), "bytes", len(img.Bytes), "mime", img.MIME)

	return &Result{
		Success: true,
		ID:      newID("img_"),
		Image:   upstream.DataURL(img),
		Metadata: Metadata{
			GenerationRequest: *req,
			GenerationTimeMs:  elapsed.Milliseconds(),
		},
		Plan:      planInfo(plan),
		Usage:     used,
		Upgrade:   s.upgrade(plan),
		CreatedAt: now.UTC(),
	}, nil
}

// increments the caller's daily bucket. a failing store lets the call through:
// the counter is an advisory soft limit, not a billing record.
func (s *Service) count(ctx context.Context, caller *entitlement.CallerContext, now time.Time) (*Usage, error) {
	key := usage.KeyFor(caller.CallerID, now)
	limit := caller.Plan.DailyLimit

	count, allowed, err := s.counter.IncrementAndCheck(ctx, key, limit)
	if err != nil {
		logger.Warn("usage counter unavailable, allowing request",
			"caller_id", caller.CallerID,
			"error", err,
		)
		return nil, nil
	}

	if !allowed {
		return nil, errors.DailyLimitExceeded(caller.Plan.ID, limit, count).With("day", key.Day)
	}

	u := &Usage{Day: key.Day, Used: count, Limit: limit}
	if limit > 0 {
		remaining := limit - count
		u.Remaining = &remaining
	}

	return u, nil
}

func (s *Service) upgrade(current plans.Plan) *Upgrade {
	next, ok := s.plans.Next(current)
	if !ok {
		return nil
	}

	return &Upgrade{
		Plan:          next.ID,
		Name:          next.Name,
		Price:         next.Price,
		MaxResolution: next.MaxDimension,
		Message:       fmt.Sprintf("upgrade to %s for up to %dx%d images", next.Name, next.MaxDimension, next.MaxDimension),
	}
}

func (s *Service) reject(plan plans.Plan, err error) {
	if e, ok := errors.As(err); ok {
		metrics.RecordRejection(plan.ID, string(e.Kind))
	}
}

// acknowledges a batch of prompts without generating anything
func (s *Service) SubmitBatch(caller *entitlement.CallerContext, raw json.RawMessage) (*BatchResult, error) {
	prompts, err := validation.Prompts(raw)
	if err != nil {
		s.reject(caller.Plan, err)
		return nil, err
	}

	result := &BatchResult{
		Success:   true,
		BatchID:   newID("batch_"),
		Status:    BatchAccepted,
		Count:     len(prompts),
		Message:   "batch accepted; submit prompts to /api/generate individually to receive images",
		Plan:      planInfo(caller.Plan),
		CreatedAt: s.now().UTC(),
	}

	logger.Info("batch accepted", "batch_id", result.BatchID, "caller_id", caller.CallerID, "count", result.Count)
	return result, nil
}

// returns the usage snapshot; enabled is false when counting is off
func (s *Service) Usage(ctx context.Context) (entries []usage.Entry, enabled bool, err error) {
	if s.counter == nil {
		return nil, false, nil
	}

	entries, err = s.counter.Snapshot(ctx)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read usage: %w", err)
	}

	return entries, true, nil
}

// the plan table in tier order
func (s *Service) Plans() []plans.Plan {
	return s.plans.All()
}
