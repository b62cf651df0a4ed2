// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-user-gateway/internal/token"
	"github.com/MKhiriev/go-user-gateway/models"
)

// UserService implements account management and login for the user service.
type UserService interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.Session, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context, page models.Page) ([]models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// AppInfoService reports build metadata of the running binary.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}

// TokenIssuer issues session tokens for a user id. *token.Signer satisfies it.
type TokenIssuer interface {
	Sign(userID int64) (token.Token, error)
}
