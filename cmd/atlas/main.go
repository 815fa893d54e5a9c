// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package main implements the atlas CLI, an MCP server bridging Confluence
// Cloud content and the Jira user directory to MCP clients.
//
// Usage:
//
//	atlas serve                 Start the MCP server (JSON-RPC over stdio)
//	atlas check [--live]        Validate configuration and credentials
//	atlas tools [--json]        List the registered tools and resources
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kraklabs/atlas/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// main parses global flags and dispatches to command handlers.
//
// Global flags:
//   - --version: display version information and exit
//   - --config: path to .atlas/config.yaml
//   - --no-color: disable colored output
func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		configPath  = flag.String("config", "", "Path to .atlas/config.yaml (default: ./.atlas/config.yaml)")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `atlas - Confluence MCP server

atlas exposes a Confluence Cloud site to MCP-compatible AI tools:
CQL search, page retrieval, space and hierarchy listing, and
user-directory search.

Usage:
  atlas <command> [options]

Commands:
  serve         Start the MCP server (JSON-RPC over stdio)
  check         Validate configuration; --live proves credentials remotely
  tools         List the registered tools and resources

Global Options:
  --config      Path to .atlas/config.yaml
  --no-color    Disable colored output
  --version     Show version and exit

Configuration:
  CONFLUENCE_BASE_URL    Site root, e.g. https://example.atlassian.net
  CONFLUENCE_EMAIL       Account email for basic authentication
  CONFLUENCE_API_TOKEN   API token paired with the email

  Base URL and email may also live in .atlas/config.yaml; the token is
  environment-only. serve and check read a .env file when present.

Examples:
  atlas check                  Verify the three required values are set
  atlas check --live           Additionally run one remote search
  atlas serve                  Serve tools over stdio
  atlas serve --metrics-addr :9464
  atlas tools --json

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("atlas version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	ui.InitColors(*noColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "serve":
		runServe(cmdArgs, *configPath)
	case "check":
		runCheck(cmdArgs, *configPath)
	case "tools":
		runTools(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
