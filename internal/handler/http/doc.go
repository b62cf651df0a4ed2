// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the user service.
//
// It exposes route wiring and request handlers for registration, login,
// logout and user lookup. Trace ids and access logging come from the shared
// middleware package; successful logins set the session cookie that the
// gateway later verifies.
package http
