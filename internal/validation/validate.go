package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"codeberg.org/pixelgate/server/internal/catalog"
	"codeberg.org/pixelgate/server/internal/errors"
	"codeberg.org/pixelgate/server/internal/logger"
	"codeberg.org/pixelgate/server/internal/plans"
)

// Validator is the only gate between untrusted input and the upstream call
type Validator struct {
	plans  *plans.Table
	models *catalog.Catalog
}

func New(table *plans.Table, defaultModel string) *Validator {
	return &Validator{plans: table, models: catalog.New(defaultModel)}
}

// checks in, in order: prompt presence, prompt length, global dimension
// bounds, the plan bound, then the model. the first violation is returned.
func (v *Validator) Validate(in Input, plan plans.Plan) (*GenerationRequest, error) {
	prompt, ok := stringField(in.Prompt)
	if !ok || strings.TrimSpace(prompt) == "" {
		return nil, errors.PromptRequired()
	}

	if n := utf8.RuneCountInString(prompt); n > MaxPromptLength {
		return nil, errors.PromptTooLong("prompt", MaxPromptLength, n)
	}

	// a negative prompt of any other type is ignored
	negative, _ := stringField(in.NegativePrompt)
	if n := utf8.RuneCountInString(negative); n > MaxPromptLength {
		return nil, errors.PromptTooLong("negative_prompt", MaxPromptLength, n)
	}

	width, err := integer(in.Width, DefaultDimension)
	if err != nil {
		return nil, errors.InvalidDimensions("width must be a whole number")
	}

	height, err := integer(in.Height, DefaultDimension)
	if err != nil {
		return nil, errors.InvalidDimensions("height must be a whole number")
	}

	steps, err := number(in.Steps, DefaultSteps)
	if err != nil {
		return nil, errors.InvalidDimensions("steps must be a number")
	}

	guidance, err := number(in.GuidanceScale, DefaultGuidance)
	if err != nil {
		return nil, errors.InvalidDimensions("guidance_scale must be a number")
	}

	if !inBounds(width) || !inBounds(height) {
		return nil, errors.InvalidDimensions(
			fmt.Sprintf("width and height must be between %d and %d", plans.MinDimension, plans.MaxDimension),
		).With("width", width).With("height", height)
	}

	if width > plan.MaxDimension || height > plan.MaxDimension {
		return nil, v.planLimit(plan, width, height)
	}

	model, ok := stringField(in.Model)
	model = strings.TrimSpace(model)
	if !ok || model == "" {
		model = v.models.Default()
	}

	// only catalog ids reach the upstream URL and metric labels
	if !v.models.Supports(model) {
		return nil, errors.ModelNotFound(logger.Truncate(model, maxEchoedModelLength))
	}

	return &GenerationRequest{
		Prompt:         prompt,
		NegativePrompt: negative,
		Width:          width,
		Height:         height,
		Steps:          int(clamp(steps, MinSteps, MaxSteps)),
		GuidanceScale:  clamp(guidance, MinGuidance, MaxGuidance),
		Model:          model,
	}, nil
}

func (v *Validator) planLimit(plan plans.Plan, width, height int) error {
	next, ok := v.plans.Next(plan)
	if !ok {
		hint := fmt.Sprintf("%s is the highest plan; request at most %dx%d", plan.Name, plan.MaxDimension, plan.MaxDimension)
		return errors.PlanLimitExceeded(plan.ID, plan.MaxDimension, width, height, "", hint)
	}

	hint := fmt.Sprintf("upgrade to %s ($%.2f) for up to %dx%d", next.Name, next.Price, next.MaxDimension, next.MaxDimension)
	return errors.PlanLimitExceeded(plan.ID, plan.MaxDimension, width, height, next.ID, hint)
}

func inBounds(d int) bool {
	return d >= plans.MinDimension && d <= plans.MaxDimension
}

// validates the prompt list of a batch submission
func Prompts(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if absent(raw) || json.Unmarshal(raw, &items) != nil {
		return nil, errors.InvalidRequest("prompts must be an array of strings", nil)
	}

	if len(items) == 0 || len(items) > MaxBatchPrompts {
		return nil, errors.InvalidRequest(fmt.Sprintf("prompts must contain between 1 and %d entries", MaxBatchPrompts), nil).
			With("count", len(items))
	}

	prompts := make([]string, 0, len(items))
	for i, item := range items {
		prompt, ok := stringField(item)
		if !ok || strings.TrimSpace(prompt) == "" {
			return nil, errors.PromptRequired().With("index", i)
		}

		if n := utf8.RuneCountInString(prompt); n > MaxPromptLength {
			return nil, errors.PromptTooLong("prompt", MaxPromptLength, n).With("index", i)
		}

		prompts = append(prompts, prompt)
	}

	return prompts, nil
}
