// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/kraklabs/atlas/internal/errors"
	"github.com/kraklabs/atlas/internal/mcpserver"
	"github.com/kraklabs/atlas/internal/output"
)

// toolInfo is the --json shape of one tool listing entry.
type toolInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    []string `json:"required"`
}

// runTools executes the 'tools' CLI command, listing the registered MCP
// tools and resources without starting a server.
func runTools(args []string) {
	fs := pflag.NewFlagSet("tools", pflag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: atlas tools [options]

Lists the tools and resources the MCP server registers.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	defs := mcpserver.Definitions()

	if *jsonOutput {
		infos := make([]toolInfo, 0, len(defs))
		for _, def := range defs {
			infos = append(infos, toolInfo{
				Name:        def.Name,
				Description: def.Description,
				Required:    def.InputSchema.Required,
			})
		}
		if err := output.JSON(infos); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tREQUIRED\tDESCRIPTION")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			def.Name,
			strings.Join(def.InputSchema.Required, ","),
			firstSentence(def.Description),
		)
	}
	_ = w.Flush()

	fmt.Printf("\nResources:\n  %s (text/markdown)\n", mcpserver.CQLGuideURI)
}

// firstSentence truncates a description at its first period for table output.
func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
