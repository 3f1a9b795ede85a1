// Package metrics defines the Prometheus metrics exported by smoothline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smoothline",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smoothline",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Pipeline metrics
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smoothline",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total smoothing pipeline runs by strategy and outcome",
	}, []string{"strategy", "outcome"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smoothline",
		Subsystem: "pipeline",
		Name:      "duration_seconds",
		Help:      "Duration of a single smoothing pipeline run",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"strategy"})

	OutputPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "smoothline",
		Subsystem: "pipeline",
		Name:      "output_points",
		Help:      "Number of points in smoothed polylines",
		Buckets:   prometheus.ExponentialBuckets(4, 4, 9),
	})

	Restores = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smoothline",
		Subsystem: "pipeline",
		Name:      "restores_total",
		Help:      "Total routes restored to their drawn geometry",
	})
)

// ObservePipeline records the outcome of one pipeline run.
func ObservePipeline(strategy string, start time.Time, points int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PipelineRuns.WithLabelValues(strategy, outcome).Inc()
	PipelineDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	if err == nil {
		OutputPoints.Observe(float64(points))
	}
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
