package config

import "time"

// Config holds the environment driven configuration of the gateway
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// upstream image API
	UpstreamAPIToken      string        `env:"UPSTREAM_API_TOKEN"`
	UpstreamBaseURL       string        `env:"UPSTREAM_BASE_URL" envDefault:"https://api-inference.huggingface.co"`
	DefaultModel          string        `env:"DEFAULT_MODEL" envDefault:"stabilityai/stable-diffusion-xl-base-1.0"`
	UpstreamTimeout       time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"120s"`
	UpstreamRPS           float64       `env:"UPSTREAM_RPS" envDefault:"5"`
	UpstreamBurst         int           `env:"UPSTREAM_BURST" envDefault:"10"`
	UpstreamMaxImageBytes int64         `env:"UPSTREAM_MAX_IMAGE_BYTES" envDefault:"20971520"`

	// operator surface
	AdminSecret string `env:"ADMIN_SECRET"`

	// traffic shaping and usage counting
	RateLimit    string `env:"RATE_LIMIT" envDefault:"60-M"` // ulule/limiter format: <limit>-<S|M|H|D>
	RedisURL     string `env:"REDIS_URL"`
	UsageCounter string `env:"USAGE_COUNTER" envDefault:"memory"` // memory | redis | off

	// entitlement
	PlansFile            string `env:"PLANS_FILE"`
	EntitlementJWTSecret string `env:"ENTITLEMENT_JWT_SECRET"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SentryDSN          string   `env:"SENTRY_DSN"`
}

// usage counter backends
const (
	CounterMemory = "memory"
	CounterRedis  = "redis"
	CounterOff    = "off"
)

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Flags holds the command line options of the terminal client
type Flags struct {
	Endpoint string
	Plan     string
	UserID   string
	APIKey   string
	OutDir   string
}
