package health

import "codeberg.org/pixelgate/server/internal/plans"

// Response is the liveness payload with the public plan table
type Response struct {
	Status    string       `json:"status"`
	Service   string       `json:"service"`
	Version   string       `json:"version,omitempty"`
	Plans     []plans.Plan `json:"plans"`
	Endpoints []string     `json:"endpoints"`
}
