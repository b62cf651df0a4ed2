package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *StructuredConfig {
	t.Helper()
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{TokenSignKey: "EOwOOG2hds94sChfQqm92yQlahx02KOPPbVEw4SQuLY="},
		Gateway: Gateway{UpstreamURI: "http://user-service:8081"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/users"}},
	})
	cfg, err := b.build()
	require.NoError(t, err)
	return cfg
}

func TestValidateGateway(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "issuer optional", mutate: func(cfg *StructuredConfig) { cfg.App.TokenIssuer = "" }},
		{name: "storage not required", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB = DB{} }},
		{name: "no sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "negative leeway", mutate: func(cfg *StructuredConfig) { cfg.App.TokenLeeway = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "no cookie", mutate: func(cfg *StructuredConfig) { cfg.App.CookieName = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "no upstream", mutate: func(cfg *StructuredConfig) { cfg.Gateway.UpstreamURI = "" }, wantErr: ErrInvalidGatewayConfigs},
		{name: "relative upstream", mutate: func(cfg *StructuredConfig) { cfg.Gateway.UpstreamURI = "user-service:8081" }, wantErr: ErrInvalidGatewayConfigs},
		{name: "ftp upstream", mutate: func(cfg *StructuredConfig) { cfg.Gateway.UpstreamURI = "ftp://files" }, wantErr: ErrInvalidGatewayConfigs},
		{name: "bad prefix", mutate: func(cfg *StructuredConfig) { cfg.Gateway.RoutePrefix = "api" }, wantErr: ErrInvalidGatewayConfigs},
		{name: "bad strip prefix", mutate: func(cfg *StructuredConfig) { cfg.Gateway.StripPrefix = "api" }, wantErr: ErrInvalidGatewayConfigs},
		{name: "no address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.ValidateGateway()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUserService(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "gateway not required", mutate: func(cfg *StructuredConfig) { cfg.Gateway = Gateway{} }},
		{name: "sqlite", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB = DB{Driver: DriverSQLite, DSN: ":memory:"} }},
		{name: "no sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero duration", mutate: func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too low", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordCost = 1 }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too high", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordCost = 40 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero page limit", mutate: func(cfg *StructuredConfig) { cfg.App.PageSizeLimit = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "negative timeout", mutate: func(cfg *StructuredConfig) { cfg.Server.ShutdownTimeout = -1 }, wantErr: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.ValidateUserService()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.DB.DSN = "postgres://app:hunter2@db:5432/users"

	out := cfg.Redacted()

	assert.Equal(t, "[REDACTED]", out.App.TokenSignKey)
	assert.NotContains(t, out.Storage.DB.DSN, "hunter2")
	assert.Contains(t, out.Storage.DB.DSN, "db:5432/users")

	// original untouched
	assert.Equal(t, "EOwOOG2hds94sChfQqm92yQlahx02KOPPbVEw4SQuLY=", cfg.App.TokenSignKey)
	out.Gateway.AllowedRoutes[0] = "/changed"
	assert.NotEqual(t, "/changed", cfg.Gateway.AllowedRoutes[0])
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "file:users.db", redactDSN("file:users.db"))
	assert.Equal(t, "postgres://db/users", redactDSN("postgres://db/users"))
	assert.Equal(t, "[REDACTED]", redactDSN("host=db user=app password=hunter2"))
	assert.Equal(t, "", redactDSN(""))
}
