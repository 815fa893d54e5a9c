// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"

	"github.com/kraklabs/atlas/pkg/cql"
)

// ListByCreatorArgs holds arguments for listing pages by creator.
type ListByCreatorArgs struct {
	// AccountID is the creator's opaque account identifier.
	AccountID string

	// Limit caps the result page size. 0 keeps the remote default.
	Limit int
}

// ListPagesByUser lists pages created by one account and returns one
// {id, title} block per page, in remote order. The account id is embedded
// into the generated CQL through cql.Quote, so an id containing quote
// characters cannot corrupt the query.
func ListPagesByUser(ctx context.Context, client API, args ListByCreatorArgs) (*Result, error) {
	if err := requireString("userAccountId", args.AccountID); err != nil {
		return nil, err
	}

	list, err := client.SearchContent(ctx, cql.PagesByCreator(args.AccountID), args.Limit)
	if err != nil {
		return nil, err
	}
	return listEnvelope(list.Results, pageSummary)
}
