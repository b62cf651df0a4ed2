package proxy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultHealthTimeout = 2 * time.Second

// HealthChecker probes the upstream health endpoint. The gateway uses it to
// answer readiness checks.
type HealthChecker struct {
	client *resty.Client
	path   string
}

// NewHealthChecker builds a checker for baseURL+path. A non-positive timeout
// falls back to two seconds.
func NewHealthChecker(baseURL, path string, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = defaultHealthTimeout
	}
	if path == "" {
		path = "/health"
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &HealthChecker{client: client, path: path}
}

// Check returns nil when the upstream answers 2xx.
func (h *HealthChecker) Check(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(h.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamUnhealthy, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: status %d", ErrUpstreamUnhealthy, resp.StatusCode())
	}

	return nil
}
