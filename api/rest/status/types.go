package status

import (
	"time"

	"codeberg.org/pixelgate/server/internal/upstream"
)

const (
	StatusOperational = "operational"
	StatusDegraded    = "degraded"
)

type Response struct {
	Success   bool                  `json:"success"`
	Status    string                `json:"status"`
	Upstream  *upstream.ProbeResult `json:"upstream"`
	LatencyMs int64                 `json:"latency_ms"`
	CheckedAt time.Time             `json:"checked_at"`
}
