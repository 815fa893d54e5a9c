// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"

	"github.com/kraklabs/atlas/pkg/confluence"
)

// fakeAPI implements API in memory, recording every call so tests can assert
// both what was sent and that validation failures issue zero remote calls.
type fakeAPI struct {
	calls int

	lastCQL      string
	lastLimit    int
	lastID       string
	lastExpand   []string
	lastSpaceKey string
	lastQuery    string

	contentList *confluence.ContentList
	content     *confluence.Content
	users       []confluence.User
	err         error
}

func (f *fakeAPI) SearchContent(_ context.Context, cql string, limit int) (*confluence.ContentList, error) {
	f.calls++
	f.lastCQL = cql
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.contentList, nil
}

func (f *fakeAPI) GetContent(_ context.Context, id string, expand ...string) (*confluence.Content, error) {
	f.calls++
	f.lastID = id
	f.lastExpand = expand
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

func (f *fakeAPI) SpaceContent(_ context.Context, spaceKey string, limit int) (*confluence.ContentList, error) {
	f.calls++
	f.lastSpaceKey = spaceKey
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.contentList, nil
}

func (f *fakeAPI) ChildPages(_ context.Context, id string, limit int) (*confluence.ContentList, error) {
	f.calls++
	f.lastID = id
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.contentList, nil
}

func (f *fakeAPI) SearchUsers(_ context.Context, query string, limit int) ([]confluence.User, error) {
	f.calls++
	f.lastQuery = query
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

// pages builds a ContentList of {id, title} pairs in the given order.
func pages(pairs ...[2]string) *confluence.ContentList {
	list := &confluence.ContentList{}
	for _, p := range pairs {
		list.Results = append(list.Results, confluence.Content{ID: p[0], Type: "page", Title: p[1]})
	}
	list.Size = len(list.Results)
	return list
}

// blockTexts extracts the payload strings of a result envelope.
func blockTexts(r *Result) []string {
	out := make([]string, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		out = append(out, b.Text)
	}
	return out
}
