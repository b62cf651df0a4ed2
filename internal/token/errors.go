// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import "errors"

// Configuration errors. They are returned by constructors only and must stop
// the process from serving traffic.
var (
	// ErrEmptyKey is returned by [NewKey] when no signing secret is configured.
	ErrEmptyKey = errors.New("token signing key is empty")

	// ErrKeyTooShort is returned by [NewKey] when the secret is shorter than
	// [MinKeyLength] bytes.
	ErrKeyTooShort = errors.New("token signing key is too short")

	// ErrInvalidDuration is returned by [NewSigner] for a non-positive token
	// lifetime.
	ErrInvalidDuration = errors.New("token duration must be positive")
)

// ErrSigningFailed wraps failures of [Signer.Sign].
var ErrSigningFailed = errors.New("token signing failed")
