// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authn implements the gateway authentication filter.
//
// For every request the filter walks a fixed sequence of stages:
//
//	classify ──unsecured──────────────────────────────▶ ALLOW
//	    │
//	  secured
//	    ▼
//	extract cookie ──missing──────────────────────────▶ DENY
//	    ▼
//	verify token ──invalid/expired/not yet valid──────▶ DENY
//	    └─────────valid───────────────────────────────▶ ALLOW
//
// [Filter.Evaluate] is the pure decision function; [Filter.Middleware] adapts
// it to net/http. DENY answers 401 Unauthorized with an empty body and stops
// the chain; ALLOW hands the untouched request to the next handler. The
// verified identity is not propagated downstream.
package authn
