package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-c", "/etc/gateway.yaml",
		"-d", "postgres://localhost/users",
		"-driver", "pgx",
		"-token-sign-key", "secret",
		"-token-issuer", "issuer",
		"-token-duration", "10m",
		"-token-leeway", "2s",
		"-cookie-name", "sid",
		"-cookie-secure",
		"-password-cost", "11",
		"-page-size-limit", "25",
		"-allowed", "/api/v1/users/login,/api/v1/users/register",
		"-allowed", "/api/v1/users/logout",
		"-upstream", "http://users:8081",
		"-route-prefix", "/api/v1/users",
		"-strip-prefix", "/api/v1",
		"-request-timeout", "3s",
		"-shutdown-timeout", "4s",
		"-log-level", "warn",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "/etc/gateway.yaml", cfg.FilePath)
	assert.Equal(t, "postgres://localhost/users", cfg.Storage.DB.DSN)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 10*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 2*time.Second, cfg.App.TokenLeeway)
	assert.Equal(t, "sid", cfg.App.CookieName)
	assert.True(t, cfg.App.CookieSecure)
	assert.Equal(t, 11, cfg.App.PasswordCost)
	assert.Equal(t, 25, cfg.App.PageSizeLimit)
	assert.Equal(t, []string{"/api/v1/users/login", "/api/v1/users/register", "/api/v1/users/logout"}, cfg.Gateway.AllowedRoutes)
	assert.Equal(t, "http://users:8081", cfg.Gateway.UpstreamURI)
	assert.Equal(t, "/api/v1/users", cfg.Gateway.RoutePrefix)
	assert.Equal(t, "/api/v1", cfg.Gateway.StripPrefix)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 4*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.FilePath)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "bad duration", args: []string{"-token-duration", "soon"}},
		{name: "bad address", args: []string{"-a", "not-an-address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "localhost:8080"},
		{in: "127.0.0.1:80", want: "127.0.0.1:80"},
		{in: ":8080", want: ":8080"},
		{in: "[::1]:8080", want: "[::1]:8080"},
		{in: "8080", wantErr: true},
		{in: "example.com:80", wantErr: true},
		{in: "localhost:0", wantErr: true},
		{in: "localhost:70000", wantErr: true},
		{in: "localhost:http", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestNetAddress_StringEmpty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}
