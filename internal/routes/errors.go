// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package routes

import "errors"

var (
	// ErrInvalidPattern is returned by [NewClassifier] when a configured
	// pattern is empty, contains dot segments or is not valid glob syntax.
	ErrInvalidPattern = errors.New("invalid route pattern")
)
