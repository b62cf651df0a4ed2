// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authn

import "errors"

// Construction errors returned by [NewFilter].
var (
	ErrNoClassifier = errors.New("authentication filter requires a route classifier")
	ErrNoVerifier   = errors.New("authentication filter requires a token verifier")
	ErrNoClock      = errors.New("authentication filter requires a clock")
	ErrNoCookieName = errors.New("authentication filter requires a session cookie name")
)
