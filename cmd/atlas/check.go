// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kraklabs/atlas/internal/config"
	"github.com/kraklabs/atlas/internal/errors"
	"github.com/kraklabs/atlas/internal/output"
	"github.com/kraklabs/atlas/internal/ui"
	"github.com/kraklabs/atlas/pkg/confluence"
)

// checkReport is the --json shape of the check command.
type checkReport struct {
	BaseURL    string `json:"base_url"`
	Email      string `json:"email"`
	TokenSet   bool   `json:"token_set"`
	Live       bool   `json:"live"`
	LiveResult string `json:"live_result,omitempty"`
}

// runCheck executes the 'check' CLI command: it validates that the three
// required configuration values are present, and with --live proves the
// credentials against the remote with a single one-item CQL search.
func runCheck(args []string, configPath string) {
	fs := pflag.NewFlagSet("check", pflag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	live := fs.Bool("live", false, "Issue one remote search to verify credentials")
	timeout := fs.Duration("timeout", 30*time.Second, "Timeout for the --live probe")
	envFile := fs.String("env-file", ".env", "Dotenv file with credentials (missing file is ignored)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: atlas check [options]

Validates atlas configuration. Without --live no network call is made.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		errors.FatalError(err, *jsonOutput)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		errors.FatalError(err, *jsonOutput)
	}

	client, err := confluence.New(cfg.ClientConfig())
	if err != nil {
		errors.FatalError(err, *jsonOutput)
	}

	report := checkReport{
		BaseURL:  cfg.BaseURL,
		Email:    cfg.Email,
		TokenSet: cfg.APIToken != "",
		Live:     *live,
	}

	if *live {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		list, err := client.SearchContent(ctx, "type=page", 1)
		if err != nil {
			errors.FatalError(err, *jsonOutput)
		}
		report.LiveResult = fmt.Sprintf("search returned %d of %d result(s)", len(list.Results), list.Size)
	}

	if *jsonOutput {
		if err := output.JSON(report); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Header("atlas configuration")
	fmt.Printf("Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("Email:    %s\n", cfg.Email)
	fmt.Printf("Token:    %s\n", maskToken(cfg.APIToken))
	if *live {
		ui.Success("credentials verified: " + report.LiveResult)
	} else {
		ui.Success("configuration complete (use --live to verify credentials remotely)")
	}
}

// maskToken renders a token as its first four characters plus ellipsis.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "..."
}
