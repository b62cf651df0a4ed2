// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ValidateGateway checks the sections the gateway process depends on.
func (cfg *StructuredConfig) ValidateGateway() error {
	if err := cfg.validateToken(); err != nil {
		return err
	}
	if cfg.App.CookieName == "" {
		return fmt.Errorf("%w: empty cookie name", ErrInvalidAppConfigs)
	}

	u, err := url.Parse(cfg.Gateway.UpstreamURI)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: upstream URI %q must be an absolute http(s) URL", ErrInvalidGatewayConfigs, cfg.Gateway.UpstreamURI)
	}
	if !strings.HasPrefix(cfg.Gateway.RoutePrefix, "/") {
		return fmt.Errorf("%w: route prefix %q must start with /", ErrInvalidGatewayConfigs, cfg.Gateway.RoutePrefix)
	}
	if cfg.Gateway.StripPrefix != "" && !strings.HasPrefix(cfg.Gateway.StripPrefix, "/") {
		return fmt.Errorf("%w: strip prefix %q must start with /", ErrInvalidGatewayConfigs, cfg.Gateway.StripPrefix)
	}

	return cfg.validateServer()
}

// ValidateUserService checks the sections the user service process depends on.
func (cfg *StructuredConfig) ValidateUserService() error {
	if err := cfg.validateToken(); err != nil {
		return err
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.CookieName == "" {
		return fmt.Errorf("%w: empty cookie name", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordCost < bcrypt.MinCost || cfg.App.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordCost)
	}
	if cfg.App.PageSizeLimit <= 0 {
		return fmt.Errorf("%w: page size limit must be positive", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	return cfg.validateServer()
}

func (cfg *StructuredConfig) validateToken() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenLeeway < 0 {
		return fmt.Errorf("%w: negative token leeway", ErrInvalidAppConfigs)
	}
	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs)
	}
	return nil
}
