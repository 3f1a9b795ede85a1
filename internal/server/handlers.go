package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"

	"honnef.co/go/smooth"
	"honnef.co/go/smooth/internal/codec"
	"honnef.co/go/smooth/internal/feature"
	"honnef.co/go/smooth/internal/metrics"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": version,
		})
	}
}

// request holds the pipeline and parameters of one request.
type request struct {
	strategy string
	pipeline smooth.Pipeline
	params   smooth.Params
}

// transition builds the operation to apply to every route of a request.
type transition func(req request) feature.Op

func smoothTransition(req request) feature.Op {
	return func(r smooth.Route) (smooth.Route, error) {
		return observe(req, func() (smooth.Route, error) { return r.Smooth(req.pipeline, req.params) })
	}
}

func restoreTransition(request) feature.Op {
	return func(r smooth.Route) (smooth.Route, error) {
		metrics.Restores.Inc()
		return r.Restore(), nil
	}
}

func toggleTransition(req request) feature.Op {
	return func(r smooth.Route) (smooth.Route, error) {
		if r.Mode() == smooth.Smoothed {
			return restoreTransition(req)(r)
		}
		return smoothTransition(req)(r)
	}
}

func updateTransition(req request) feature.Op {
	return func(r smooth.Route) (smooth.Route, error) {
		if r.Mode() != smooth.Smoothed {
			return r, nil
		}
		return smoothTransition(req)(r)
	}
}

func observe(req request, fn func() (smooth.Route, error)) (smooth.Route, error) {
	start := time.Now()
	r, err := fn()
	metrics.ObservePipeline(req.strategy, start, r.Live().Len(), err)
	return r, err
}

// parseRequest reads the strategy, sharpness and resolution query parameters.
// Missing parameters fall back to the configuration.
func parseRequest(c *fiber.Ctx, deps *Dependencies) (request, error) {
	cfg := deps.Smoothing
	req := request{strategy: c.Query("strategy", cfg.Strategy)}

	pl, err := cfg.PipelineFor(req.strategy)
	if err != nil {
		return request{}, err
	}
	req.pipeline = pl

	req.params = cfg.Params()
	if s := c.Query("sharpness"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return request{}, fmt.Errorf("sharpness: %w", err)
		}
		req.params.Sharpness = v
	}
	if s := c.Query("resolution"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return request{}, fmt.Errorf("resolution: %w", err)
		}
		req.params.Resolution = v
	}
	req.params = req.params.Clamp()
	return req, nil
}

// TransitionHandler applies a transition to the GeoJSON body. A Feature is
// answered with a Feature, anything else with a FeatureCollection.
func TransitionHandler(deps *Dependencies, tr transition) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := LoggerFromCtx(c.UserContext())

		req, err := parseRequest(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		op := tr(req)

		body := c.Body()
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(body, &head); err != nil {
			return errBadRequest(c, "invalid JSON: "+err.Error())
		}

		if head.Type == "Feature" {
			f, err := geojson.UnmarshalFeature(body)
			if err != nil {
				return errBadRequest(c, err.Error())
			}
			out, err := feature.ApplyFeature(f, op)
			if err != nil {
				log.Warn("transition failed", "error", err)
				return errTransform(c, err)
			}
			return c.JSON(out)
		}

		fc, err := codec.DecodeGeoJSON(body)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		out, err := feature.Apply(fc, op)
		if err != nil {
			log.Warn("transition failed", "error", err)
			return errTransform(c, err)
		}
		log.Debug("transition applied", "features", len(out.Features), "strategy", req.strategy)
		return c.JSON(out)
	}
}
