// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

// Package config loads SecureConnect configuration from defaults, an
// optional YAML file, environment variables, and command-line flags, in
// that order of precedence (later wins). The resulting Config is passed
// explicitly to constructors; nothing reads ambient global state.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// envPrefix is the prefix for environment overrides, e.g.
// SECURECONNECT_DATABASE, SECURECONNECT_SECRET.
const envPrefix = "SECURECONNECT_"

// DefaultJWTSecret is the fallback signing secret used when none is
// configured. Running with it is a recognized weak-default risk; serve
// logs a warning when it is in effect.
const DefaultJWTSecret = "secure-connect-secret-key"

// Config holds all runtime settings.
type Config struct {
	// Listen is the HTTP listen address for the application server.
	Listen string `koanf:"listen"`

	// Metrics is the listen address for metrics/health endpoints.
	// Empty disables the observability server.
	Metrics string `koanf:"metrics"`

	// Database is the PostgreSQL connection URL.
	Database string `koanf:"database"`

	// Secret signs session tokens. Falls back to DefaultJWTSecret.
	Secret string `koanf:"secret"`

	// TokenTTL is the session token validity window.
	TokenTTL time.Duration `koanf:"ttl"`

	// SecureCookie marks the session cookie Secure; enable in
	// production behind TLS.
	SecureCookie bool `koanf:"securecookie"`

	// LogFormat is "json" or "text".
	LogFormat string `koanf:"logformat"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Listen:    ":8080",
		Metrics:   "127.0.0.1:9100",
		Database:  "postgres://localhost:5432/secure_connect",
		Secret:    "",
		TokenTTL:  24 * time.Hour,
		LogFormat: "json",
	}
}

// UsingDefaultSecret reports whether no signing secret was configured.
func (c *Config) UsingDefaultSecret() bool {
	return c.Secret == ""
}

// SigningSecret returns the configured secret, or DefaultJWTSecret when
// unset.
func (c *Config) SigningSecret() []byte {
	if c.UsingDefaultSecret() {
		return []byte(DefaultJWTSecret)
	}
	return []byte(c.Secret)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return oops.Code("CONFIG_INVALID").Errorf("listen address is required")
	}
	if c.Database == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database URL is required")
	}
	if c.TokenTTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token ttl must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log format must be 'json' or 'text', got %q", c.LogFormat)
	}
	return nil
}

// Load assembles the configuration. path is an optional YAML file
// ("" skips it); flags is an optional pflag set whose changed flags
// override everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
