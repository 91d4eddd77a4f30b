package admin

import (
	"time"

	"codeberg.org/pixelgate/server/internal/usage"
)

// Info is the static part of the operator health snapshot
type Info struct {
	Version      string
	Environment  string
	StartedAt    time.Time
	UsageCounter string
	RateLimit    string
	DefaultModel string
	UpstreamURL  string
}

type HealthResponse struct {
	Success       bool      `json:"success"`
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	Environment   string    `json:"environment"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Goroutines    int       `json:"goroutines"`
	UsageCounter  string    `json:"usage_counter"`
	RateLimit     string    `json:"rate_limit"`
	DefaultModel  string    `json:"default_model"`
	UpstreamURL   string    `json:"upstream_url"`
}

type UsageResponse struct {
	Success bool          `json:"success"`
	Enabled bool          `json:"enabled"`
	Day     string        `json:"day"`
	Callers int           `json:"callers_today"`
	Total   int64         `json:"total_today"`
	Entries []usage.Entry `json:"entries"`
}
