// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"

	"github.com/kraklabs/atlas/pkg/confluence"
)

// GetPageArgs holds arguments for fetching a single page.
type GetPageArgs struct {
	// ID is the content identifier.
	ID string

	// Raw skips the HTML-to-text conversion and returns the body markup
	// verbatim.
	Raw bool
}

// GetPageByID fetches one page with its body expanded and returns a single
// {id, title, body} block. The body comes from the export view when
// available, otherwise storage format; a response missing both
// representations is an error, never an empty body.
func GetPageByID(ctx context.Context, client API, args GetPageArgs) (*Result, error) {
	if err := requireString("id", args.ID); err != nil {
		return nil, err
	}

	page, err := client.GetContent(ctx, args.ID, "body.export_view", "body.storage")
	if err != nil {
		return nil, err
	}

	var body string
	if args.Raw {
		body, err = confluence.RawBody(page)
	} else {
		body, err = confluence.BodyText(page)
	}
	if err != nil {
		return nil, err
	}

	return singleEnvelope(PageDetail{ID: page.ID, Title: page.Title, Body: body})
}
