package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelgate",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pixelgate",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelgate",
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Total calls to the inference API by outcome",
		},
		[]string{"model", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pixelgate",
			Subsystem: "upstream",
			Name:      "duration_seconds",
			Help:      "Inference API call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"model"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelgate",
			Name:      "generations_total",
			Help:      "Successful image generations by plan",
		},
		[]string{"plan"},
	)

	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelgate",
			Name:      "rejections_total",
			Help:      "Generation calls rejected before reaching the inference API, by plan and error kind",
		},
		[]string{"plan", "kind"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpstreamCall records one inference API call
func RecordUpstreamCall(model, outcome string, durationSec float64) {
	UpstreamCallsTotal.WithLabelValues(model, outcome).Inc()
	UpstreamDuration.WithLabelValues(model).Observe(durationSec)
}

func RecordGeneration(plan string) {
	GenerationsTotal.WithLabelValues(plan).Inc()
}

func RecordRejection(plan, kind string) {
	RejectionsTotal.WithLabelValues(plan, kind).Inc()
}

// gin middleware recording request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RecordRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// exposes the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
