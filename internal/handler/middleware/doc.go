// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package middleware holds the net/http middleware shared by the gateway and
// the user service routers: trace id propagation and access logging.
//
// TraceID must run before Logging so that the access log entry carries the
// trace_id field.
package middleware
