// Package config provides centralized configuration management for the USPTO TSDR MCP server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultPort is used by the HTTP transport when PORT is unset.
	DefaultPort = 3000

	// ServiceName is reported by the health endpoint and the MCP handshake.
	ServiceName = "uspto-tsdr-mcp"
)

// Config holds the complete configuration for the application. It is built
// once at startup and passed explicitly to every component.
type Config struct {
	// USPTO TSDR API configuration
	USPTO struct {
		APIKey    string
		BaseURL   string
		UserAgent string
	}

	// HTTP transport configuration
	Server struct {
		Port        int
		Environment string
	}

	// Logging configuration
	Log struct {
		Level  string
		Format string
	}

	Version string
}

// bindings maps configuration keys to the environment variables that feed them.
var bindings = map[string]string{
	"uspto.api_key":      "USPTO_API_KEY",
	"uspto.base_url":     "USPTO_BASE_URL",
	"uspto.user_agent":   "USPTO_USER_AGENT",
	"server.port":        "PORT",
	"server.environment": "NODE_ENV",
	"log.level":          "LOG_LEVEL",
	"log.format":         "LOG_FORMAT",
}

// Load reads configuration from the environment and an optional
// tsdr-mcp.{yaml,json,toml} file in the working directory or
// $HOME/.config/tsdr-mcp.
func Load(version string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("tsdr-mcp")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/tsdr-mcp")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return FromViper(v, version)
}

// FromViper builds a Config from an existing viper instance, applying defaults
// and environment bindings.
func FromViper(v *viper.Viper, version string) (*Config, error) {
	v.SetDefault("uspto.base_url", "https://tsdrapi.uspto.gov/ts/cd")
	v.SetDefault("uspto.user_agent", ServiceName+"/"+version)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.environment", "production")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	cfg := &Config{Version: version}

	cfg.USPTO.APIKey = strings.TrimSpace(v.GetString("uspto.api_key"))
	cfg.USPTO.BaseURL = v.GetString("uspto.base_url")
	cfg.USPTO.UserAgent = v.GetString("uspto.user_agent")

	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.Environment = v.GetString("server.environment")

	cfg.Log.Level = strings.ToLower(v.GetString("log.level"))
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))

	return cfg, nil
}

// HasAPIKey reports whether a USPTO API key was configured.
func (c *Config) HasAPIKey() bool {
	return c.USPTO.APIKey != ""
}

// Validate checks if all required configuration values are set
func (c *Config) Validate() error {
	var errs []string

	if !c.HasAPIKey() {
		errs = append(errs, "USPTO_API_KEY is not set; every tool will return configuration instructions")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port: %d", c.Server.Port))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s", c.Log.Level))
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("invalid log format: %s", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}

	return nil
}
