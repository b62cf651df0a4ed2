// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs an HTTP handler until the process is asked to stop.
//
// It owns the listener lifecycle shared by the gateway and the user service:
// startup, signal handling, and graceful shutdown bounded by the configured
// timeout.
package server
