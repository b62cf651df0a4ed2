package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenDuration   = 15 * time.Minute
	DefaultCookieName      = "spring_kube_infra_login_token"
	DefaultPageSizeLimit   = 100
	DefaultRoutePrefix     = "/api/v1/users"
	DefaultStripPrefix     = "/api/v1"
	DefaultDriver          = DriverPostgres
	DefaultHTTPAddress     = ":8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DefaultAllowedRoutes are the user service endpoints reachable without a
// session token.
func DefaultAllowedRoutes() []string {
	return []string{
		"/api/v1/users/register",
		"/api/v1/users/login",
		"/api/v1/users/logout",
	}
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration: DefaultTokenDuration,
			CookieName:    DefaultCookieName,
			PasswordCost:  bcrypt.DefaultCost,
			PageSizeLimit: DefaultPageSizeLimit,
		},
		Gateway: Gateway{
			AllowedRoutes: DefaultAllowedRoutes(),
			RoutePrefix:   DefaultRoutePrefix,
			StripPrefix:   DefaultStripPrefix,
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDriver},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}
