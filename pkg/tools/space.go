// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import "context"

// ListSpaceArgs holds arguments for listing pages in a space.
type ListSpaceArgs struct {
	// SpaceKey is the short key identifying the space.
	SpaceKey string

	// Limit caps the result page size. 0 keeps the remote default.
	Limit int
}

// ListPagesInSpace lists the pages of one space and returns one {id, title}
// block per page, in remote order.
func ListPagesInSpace(ctx context.Context, client API, args ListSpaceArgs) (*Result, error) {
	if err := requireString("spaceKey", args.SpaceKey); err != nil {
		return nil, err
	}

	list, err := client.SpaceContent(ctx, args.SpaceKey, args.Limit)
	if err != nil {
		return nil, err
	}
	return listEnvelope(list.Results, pageSummary)
}
