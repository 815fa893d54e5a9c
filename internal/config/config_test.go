// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvAPIToken, "")
	os.Unsetenv(EnvBaseURL)
	os.Unsetenv(EnvEmail)
	os.Unsetenv(EnvAPIToken)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://example.atlassian.net\nemail: dev@example.com\ntimeout: 45s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.atlassian.net", cfg.BaseURL)
	assert.Equal(t, "dev@example.com", cfg.Email)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.APIToken, "token never comes from the file")
}

func TestLoad_TokenNotReadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_token: sneaky\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIToken)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://file.atlassian.net\nemail: file@example.com\n"), 0o600))

	t.Setenv(EnvBaseURL, "https://env.atlassian.net")
	t.Setenv(EnvAPIToken, "tok-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.atlassian.net", cfg.BaseURL)
	assert.Equal(t, "file@example.com", cfg.Email, "file value stands when env is unset")
	assert.Equal(t, "tok-from-env", cfg.APIToken)
}

func TestLoad_MissingDefaultFileOK(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv(EnvBaseURL, "https://env.atlassian.net")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.atlassian.net", cfg.BaseURL)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unclosed\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvAPIToken+"=tok-from-dotenv\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "tok-from-dotenv", os.Getenv(EnvAPIToken))
}

func TestLoadEnvFile_MissingOK(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "no-such.env")))
}

func TestClientConfig(t *testing.T) {
	cfg := &Config{
		BaseURL:  "https://example.atlassian.net",
		Email:    "dev@example.com",
		APIToken: "tok",
		Timeout:  10 * time.Second,
	}

	cc := cfg.ClientConfig()
	assert.Equal(t, cfg.BaseURL, cc.BaseURL)
	assert.Equal(t, cfg.Email, cc.Email)
	assert.Equal(t, cfg.APIToken, cc.APIToken)
	assert.Equal(t, cfg.Timeout, cc.Timeout)
}
