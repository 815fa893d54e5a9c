// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kraklabs/atlas/pkg/confluence"
)

// API is the subset of the Confluence client the tools depend on.
// *confluence.Client implements it; tests supply fakes.
type API interface {
	SearchContent(ctx context.Context, cql string, limit int) (*confluence.ContentList, error)
	GetContent(ctx context.Context, id string, expand ...string) (*confluence.Content, error)
	SpaceContent(ctx context.Context, spaceKey string, limit int) (*confluence.ContentList, error)
	ChildPages(ctx context.Context, id string, limit int) (*confluence.ContentList, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]confluence.User, error)
}

// Block is one tagged content block in a tool result envelope.
type Block struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextBlock creates a text content block.
func TextBlock(text string) Block {
	return Block{Type: "text", Text: text}
}

// Result is the uniform envelope every tool returns: an ordered sequence of
// content blocks, one per result item for collection tools, exactly one for
// single-entity tools.
type Result struct {
	Blocks []Block
}

// InputError reports an inbound parameter that failed validation. It is
// raised before any remote call is made.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// requireString validates that a required textual parameter is present and
// non-blank.
func requireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &InputError{Field: field, Reason: "must be a non-empty string"}
	}
	return nil
}

// PageSummary is the field subset emitted for each item of a page-listing
// tool. Field order here fixes the serialized key order.
type PageSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PageDetail is the single-entity payload of confluence_get_page_by_id.
type PageDetail struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UserEntry is the per-item payload of search_user. Email is a pointer and
// deliberately not omitempty: a privacy-hidden address serializes as an
// explicit null, never as an absent key.
type UserEntry struct {
	AccountID   string  `json:"accountId"`
	DisplayName string  `json:"displayName"`
	Email       *string `json:"email"`
}

// listEnvelope normalizes a homogeneous collection into a Result, one block
// per item in the order given, each block carrying the JSON serialization of
// the selected field subset. An empty collection yields an empty envelope.
func listEnvelope[T any, S any](items []T, selector func(T) S) (*Result, error) {
	blocks := make([]Block, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(selector(item))
		if err != nil {
			return nil, fmt.Errorf("serialize result item: %w", err)
		}
		blocks = append(blocks, TextBlock(string(payload)))
	}
	return &Result{Blocks: blocks}, nil
}

// singleEnvelope normalizes a single entity into a one-block Result.
func singleEnvelope[S any](payload S) (*Result, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serialize result: %w", err)
	}
	return &Result{Blocks: []Block{TextBlock(string(data))}}, nil
}

// pageSummary selects the list-tool field subset from a content item.
func pageSummary(c confluence.Content) PageSummary {
	return PageSummary{ID: c.ID, Title: c.Title}
}
