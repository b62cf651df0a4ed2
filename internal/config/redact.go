package config

import (
	"net/url"
	"strings"
)

const redacted = "[REDACTED]"

// Redacted returns a copy safe to log: the signing key is masked and any
// password embedded in the DSN is replaced.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	out := cfg
	out.Gateway.AllowedRoutes = append([]string(nil), cfg.Gateway.AllowedRoutes...)

	if out.App.TokenSignKey != "" {
		out.App.TokenSignKey = redacted
	}
	out.Storage.DB.DSN = redactDSN(cfg.Storage.DB.DSN)

	return out
}

func redactDSN(dsn string) string {
	// key=value form, e.g. "host=db password=secret"
	if strings.Contains(dsn, "password=") {
		return redacted
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return redacted
	}
	if _, ok := u.User.Password(); !ok {
		return dsn
	}
	return u.Redacted()
}
