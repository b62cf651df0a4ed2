// Package gateway wires the gateway router: operational endpoints at the root
// and the guarded, proxied user route group under the configured prefix.
package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/models"
)

// Guard wraps a handler with the authentication filter. *authn.Filter
// satisfies it.
type Guard interface {
	Middleware(next http.Handler) http.Handler
}

// ReadinessChecker reports whether the upstream can serve traffic.
// *proxy.HealthChecker satisfies it.
type ReadinessChecker interface {
	Check(ctx context.Context) error
}

type Handler struct {
	routePrefix string
	guard       Guard
	upstream    http.Handler

	readiness ReadinessChecker
	gatherer  prometheus.Gatherer
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// Option customises a [Handler].
type Option func(*Handler)

// WithReadiness enables GET /ready backed by c.
func WithReadiness(c ReadinessChecker) Option {
	return func(h *Handler) {
		h.readiness = c
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.gatherer = g
	}
}

// WithBuildInfo serves info on GET /version.
func WithBuildInfo(info models.AppBuildInfo) Option {
	return func(h *Handler) {
		h.buildInfo = info
	}
}

// NewHandler mounts guard in front of upstream for every path under
// routePrefix. The prefix itself is part of the group.
func NewHandler(routePrefix string, guard Guard, upstream http.Handler, logger *logger.Logger, opts ...Option) *Handler {
	logger.Info().Str("route_prefix", routePrefix).Msg("gateway handler created")

	h := &Handler{
		routePrefix: "/" + strings.Trim(routePrefix, "/"),
		guard:       guard,
		upstream:    upstream,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}
