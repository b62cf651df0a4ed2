package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// routeList collects -allowed values; each value may itself be a comma
// separated list.
type routeList []string

// parseFlags parses the configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config config file path (JSON or YAML)
//	-d database DSN
//	-driver database driver (pgx or sqlite3)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "15m")
//	-token-leeway tolerated clock skew (e.g., "5s")
//	-cookie-name session cookie name
//	-cookie-secure mark the session cookie Secure
//	-password-cost bcrypt cost
//	-page-size-limit largest accepted page size
//	-allowed public route pattern (repeatable, comma separated)
//	-upstream user service base URL
//	-route-prefix proxied route group prefix
//	-strip-prefix prefix removed before forwarding
//	-request-timeout request timeout (e.g., "30s")
//	-shutdown-timeout graceful shutdown timeout (e.g., "10s")
//	-log-level minimum log level
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var allowed routeList
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.FilePath, "c", "", "Config file path")
	fs.StringVar(&cfg.FilePath, "config", "", "Config file path (alias)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Database driver (pgx or sqlite3)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 15m)")
	fs.DurationVar(&cfg.App.TokenLeeway, "token-leeway", 0, "Tolerated clock skew (e.g., 5s)")
	fs.StringVar(&cfg.App.CookieName, "cookie-name", "", "Session cookie name")
	fs.BoolVar(&cfg.App.CookieSecure, "cookie-secure", false, "Mark the session cookie Secure")
	fs.IntVar(&cfg.App.PasswordCost, "password-cost", 0, "bcrypt cost")
	fs.IntVar(&cfg.App.PageSizeLimit, "page-size-limit", 0, "Largest accepted page size")
	fs.Var(&allowed, "allowed", "Public route pattern (repeatable, comma separated)")
	fs.StringVar(&cfg.Gateway.UpstreamURI, "upstream", "", "User service base URL")
	fs.StringVar(&cfg.Gateway.RoutePrefix, "route-prefix", "", "Proxied route group prefix")
	fs.StringVar(&cfg.Gateway.StripPrefix, "strip-prefix", "", "Prefix removed before forwarding")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 10s)")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	if len(allowed) > 0 {
		cfg.Gateway.AllowedRoutes = allowed
	}

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. An empty host listens on all interfaces; a non-empty host must
// be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

func (l *routeList) String() string {
	return strings.Join(*l, ",")
}

func (l *routeList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}
