// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"

	"github.com/kraklabs/atlas/pkg/cql"
)

// SearchArgs holds arguments for the CQL search tool.
type SearchArgs struct {
	// CQL is the raw query, passed to the remote verbatim.
	CQL string

	// Limit caps the result page size. 0 keeps the remote default; only
	// the first page is returned regardless.
	Limit int
}

// SearchCQL runs a raw CQL query against the content store and returns one
// {id, title} block per matching item, in remote order.
func SearchCQL(ctx context.Context, client API, args SearchArgs) (*Result, error) {
	if err := requireString("cql", args.CQL); err != nil {
		return nil, err
	}
	if err := cql.Validate(args.CQL); err != nil {
		return nil, &InputError{Field: "cql", Reason: err.Error()}
	}

	list, err := client.SearchContent(ctx, args.CQL, args.Limit)
	if err != nil {
		return nil, err
	}
	return listEnvelope(list.Results, pageSummary)
}
