// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrWrongPassword         = errors.New("wrong password")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrInvalidPage           = errors.New("invalid page requested")
	ErrPageSizeLimitExceeded = errors.New("page size limit exceeded")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
