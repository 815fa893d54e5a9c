// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads atlas configuration.
//
// Sources, later wins:
//
//  1. an optional YAML file (.atlas/config.yaml by default)
//  2. process environment (CONFLUENCE_BASE_URL, CONFLUENCE_EMAIL,
//     CONFLUENCE_API_TOKEN)
//
// The API token is never read from the YAML file; it only comes from the
// environment (optionally populated from a .env file via LoadEnvFile).
// Validation of the assembled configuration happens in confluence.New so
// that tests can construct fabricated configs directly.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/atlas/pkg/confluence"
)

// Environment variable names for the three required values.
const (
	EnvBaseURL  = "CONFLUENCE_BASE_URL"
	EnvEmail    = "CONFLUENCE_EMAIL"
	EnvAPIToken = "CONFLUENCE_API_TOKEN"
)

// DefaultPath is the default configuration file location, relative to the
// working directory.
const DefaultPath = ".atlas/config.yaml"

// Config holds the process-scoped atlas configuration.
type Config struct {
	// BaseURL is the Atlassian site root, e.g. https://example.atlassian.net.
	BaseURL string `yaml:"base_url"`

	// Email is the account email for HTTP basic authentication.
	Email string `yaml:"email"`

	// APIToken is the secret paired with Email. Environment only.
	APIToken string `yaml:"-"`

	// Timeout bounds a single remote call. Zero means the client default.
	Timeout time.Duration `yaml:"timeout"`
}

// Load assembles the configuration from the YAML file at path (skipped
// silently when absent, unless the path was given explicitly) and the
// process environment. It does not validate completeness; confluence.New
// does that before any network call.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; the environment can carry everything.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvEmail); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.APIToken = v
	}

	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error; credentials commonly arrive via the real
// environment in CI.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ClientConfig converts the configuration into the client's config struct.
func (c *Config) ClientConfig() confluence.Config {
	return confluence.Config{
		BaseURL:  c.BaseURL,
		Email:    c.Email,
		APIToken: c.APIToken,
		Timeout:  c.Timeout,
	}
}
