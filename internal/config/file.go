package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors StructuredConfig for JSON and YAML files.
type fileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		TokenLeeway   Duration `json:"token_leeway" yaml:"token_leeway"`
		CookieName    string   `json:"cookie_name" yaml:"cookie_name"`
		CookieSecure  bool     `json:"cookie_secure" yaml:"cookie_secure"`
		PasswordCost  int      `json:"password_cost" yaml:"password_cost"`
		PageSizeLimit int      `json:"page_size_limit" yaml:"page_size_limit"`
	} `json:"app" yaml:"app"`

	Gateway struct {
		AllowedRoutes []string `json:"allowed_routes" yaml:"allowed_routes"`
		UpstreamURI   string   `json:"upstream_uri" yaml:"upstream_uri"`
		RoutePrefix   string   `json:"route_prefix" yaml:"route_prefix"`
		StripPrefix   string   `json:"strip_prefix" yaml:"strip_prefix"`
	} `json:"gateway" yaml:"gateway"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Log struct {
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// parseFile reads a config file. Files named *.yaml or *.yml are decoded as
// YAML, everything else as JSON. Unknown keys are rejected.
func parseFile(path string) (*StructuredConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&fc)
	default:
		dec := json.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(&fc)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
			TokenLeeway:   time.Duration(fc.App.TokenLeeway),
			CookieName:    fc.App.CookieName,
			CookieSecure:  fc.App.CookieSecure,
			PasswordCost:  fc.App.PasswordCost,
			PageSizeLimit: fc.App.PageSizeLimit,
		},
		Gateway: Gateway{
			AllowedRoutes: fc.Gateway.AllowedRoutes,
			UpstreamURI:   fc.Gateway.UpstreamURI,
			RoutePrefix:   fc.Gateway.RoutePrefix,
			StripPrefix:   fc.Gateway.StripPrefix,
		},
		Storage: Storage{
			DB: DB{
				Driver: fc.Storage.DB.Driver,
				DSN:    fc.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Log: Log{Level: fc.Log.Level},
	}
}

// Duration is a time.Duration that decodes from strings like "15m" or from
// integer nanoseconds, in both JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}

	if tmp, err := time.ParseDuration(value.Value); err == nil {
		*d = Duration(tmp)
		return nil
	}

	n, err := strconv.ParseInt(value.Value, 10, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, value.Value)
	}
	*d = Duration(n)
	return nil
}
