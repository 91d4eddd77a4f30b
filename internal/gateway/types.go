package gateway

import (
	"context"
	"time"

	"codeberg.org/pixelgate/server/internal/plans"
	"codeberg.org/pixelgate/server/internal/upstream"
	"codeberg.org/pixelgate/server/internal/validation"
)

// Generator produces one image per call; implemented by *upstream.Client
type Generator interface {
	Generate(ctx context.Context, req *validation.GenerationRequest) (*upstream.Image, error)
}

// Result is the success envelope of a generation call
type Result struct {
	Success   bool      `json:"success"`
	ID        string    `json:"id"`
	Image     string    `json:"image"` // data:<mime>;base64,<payload>
	Metadata  Metadata  `json:"metadata"`
	Plan      PlanInfo  `json:"plan"`
	Usage     *Usage    `json:"usage,omitempty"`
	Upgrade   *Upgrade  `json:"upgrade,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Metadata echoes the normalized request
type Metadata struct {
	validation.GenerationRequest
	GenerationTimeMs int64 `json:"generation_time_ms"`
}

type PlanInfo struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MaxResolution int     `json:"max_resolution"`
	Price         float64 `json:"price"`
	DailyLimit    int64   `json:"daily_limit,omitempty"`
}

// Usage is the caller's count for the current day, present when counting is enabled
type Usage struct {
	Day       string `json:"day"`
	Used      int64  `json:"used"`
	Limit     int64  `json:"limit,omitempty"`
	Remaining *int64 `json:"remaining,omitempty"`
}

// Upgrade suggests the plan one tier above the caller's
type Upgrade struct {
	Plan          string  `json:"plan"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	MaxResolution int     `json:"max_resolution"`
	Message       string  `json:"message"`
}

// BatchResult acknowledges a batch submission. no images are generated.
type BatchResult struct {
	Success   bool      `json:"success"`
	BatchID   string    `json:"batch_id"`
	Status    string    `json:"status"`
	Count     int       `json:"count"`
	Message   string    `json:"message"`
	Plan      PlanInfo  `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

const BatchAccepted = "accepted"

func planInfo(p plans.Plan) PlanInfo {
	return PlanInfo{
		ID:            p.ID,
		Name:          p.Name,
		MaxResolution: p.MaxDimension,
		Price:         p.Price,
		DailyLimit:    p.DailyLimit,
	}
}
