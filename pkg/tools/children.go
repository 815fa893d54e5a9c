// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import "context"

// ListChildrenArgs holds arguments for listing the children of a page.
type ListChildrenArgs struct {
	// ID is the parent content identifier.
	ID string

	// Limit caps the result page size. 0 keeps the remote default.
	Limit int
}

// ListPageChildren lists the direct page children of a content item and
// returns one {id, title} block per child, in remote order.
func ListPageChildren(ctx context.Context, client API, args ListChildrenArgs) (*Result, error) {
	if err := requireString("id", args.ID); err != nil {
		return nil, err
	}

	list, err := client.ChildPages(ctx, args.ID, args.Limit)
	if err != nil {
		return nil, err
	}
	return listEnvelope(list.Results, pageSummary)
}
