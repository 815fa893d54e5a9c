// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/kraklabs/atlas/internal/config"
	"github.com/kraklabs/atlas/internal/errors"
	"github.com/kraklabs/atlas/internal/mcpserver"
	"github.com/kraklabs/atlas/internal/metrics"
	"github.com/kraklabs/atlas/pkg/confluence"
)

// runServe executes the 'serve' CLI command: it assembles the configuration,
// constructs the Confluence client (failing fast on missing credentials) and
// serves MCP over stdio until the client disconnects.
//
// All logging goes to stderr; stdout belongs to the MCP transport.
func runServe(args []string, configPath string) {
	fs := pflag.NewFlagSet("serve", pflag.ExitOnError)
	envFile := fs.String("env-file", ".env", "Dotenv file with credentials (missing file is ignored)")
	metricsAddr := fs.String("metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9464)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: atlas serve [options]

Starts the MCP server on stdin/stdout. Configuration comes from
.atlas/config.yaml and the CONFLUENCE_* environment variables; missing
credentials abort startup before any tool call is accepted.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	logger := newLogger(*logLevel)

	if err := config.LoadEnvFile(*envFile); err != nil {
		errors.FatalError(err, false)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		errors.FatalError(err, false)
	}

	client, err := confluence.New(cfg.ClientConfig())
	if err != nil {
		errors.FatalError(err, false)
	}
	client.Observe = metrics.ObserveRemote

	if *metricsAddr != "" {
		logger.Info("exposing metrics", "addr", *metricsAddr)
		go metrics.Serve(*metricsAddr, logger)
	}

	s := mcpserver.New(client, mcpserver.Options{Version: version, Logger: logger})

	logger.Info("atlas MCP server on stdio", "base_url", cfg.BaseURL, "version", version)
	if err := mcpserver.ServeStdio(s); err != nil {
		errors.FatalError(err, false)
	}
}

// newLogger builds the stderr slog logger used by serve.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
