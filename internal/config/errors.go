// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by ValidateGateway and ValidateUserService.
var (
	// ErrInvalidAppConfigs indicates missing or out of range token, cookie or
	// paging settings (for example, an empty signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidGatewayConfigs indicates an unusable upstream address or
	// route prefix.
	ErrInvalidGatewayConfigs = errors.New("invalid gateway configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN or unknown driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or a
	// negative timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
