// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import "errors"

var (
	// ErrInvalidUpstream is returned when the configured upstream address is
	// not an absolute http(s) URL.
	ErrInvalidUpstream = errors.New("invalid upstream address")

	// ErrUpstreamUnhealthy is returned by [HealthChecker.Check] when the
	// upstream answers with a non-2xx status.
	ErrUpstreamUnhealthy = errors.New("upstream is unhealthy")
)
