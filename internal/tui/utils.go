package tui

import (
	"fmt"
	"strings"

	"codeberg.org/pixelgate/server/api/rest/status"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/plans"
)

// square resolutions offered by the generator, cycled with ctrl+r
var sizes = []int{512, 768, 1024}

// renders the plan table as markdown for glamour
func planTable(table []plans.Plan) string {
	var b strings.Builder

	b.WriteString("| Plan | Max resolution | Price | Daily limit |\n")
	b.WriteString("|------|----------------|-------|-------------|\n")

	for _, p := range table {
		limit := "unlimited"
		if p.DailyLimit > 0 {
			limit = fmt.Sprintf("%d", p.DailyLimit)
		}

		fmt.Fprintf(&b, "| %s | %dx%d | $%.2f | %s |\n", p.Name, p.MaxDimension, p.MaxDimension, p.Price, limit)
	}

	return b.String()
}

func formatStatus(resp *status.Response) string {
	if resp.Upstream == nil {
		return resp.Status
	}

	line := fmt.Sprintf("%s | model: %s | latency: %dms", resp.Status, resp.Upstream.Model, resp.LatencyMs)
	if resp.Upstream.State != "" {
		line += " | state: " + resp.Upstream.State
	}

	return line
}

func formatResult(result *gateway.Result) string {
	meta := result.Metadata

	line := fmt.Sprintf("%dx%d | steps: %d | guidance: %.1f | %dms | plan: %s",
		meta.Width, meta.Height, meta.Steps, meta.GuidanceScale, meta.GenerationTimeMs, result.Plan.Name)

	if result.Usage != nil && result.Usage.Remaining != nil {
		line += fmt.Sprintf(" | %d left today", *result.Usage.Remaining)
	}

	return line
}
