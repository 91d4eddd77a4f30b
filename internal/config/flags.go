package config

import (
	"flag"
	"os"
)

// parses CLI flags for the terminal client
func ParseTUIFlags(args []string) Flags {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)

	endpoint := fs.String("endpoint", envOr("PIXELGATE_ENDPOINT", "http://localhost:8080"), "gateway base URL")
	plan := fs.String("plan", envOr("PIXELGATE_PLAN", ""), "plan hint sent as the subscription header")
	userID := fs.String("user", envOr("PIXELGATE_USER", ""), "caller id sent as the user header")
	apiKey := fs.String("key", envOr("PIXELGATE_API_KEY", ""), "api key sent as the key header")
	outDir := fs.String("out", envOr("PIXELGATE_OUT_DIR", "."), "directory where generated images are saved")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{
		Endpoint: *endpoint,
		Plan:     *plan,
		UserID:   *userID,
		APIKey:   *apiKey,
		OutDir:   *outDir,
	}
}

// returns default flags for the terminal client
func DefaultTUIFlags() Flags {
	return Flags{Endpoint: "http://localhost:8080", OutDir: "."}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
