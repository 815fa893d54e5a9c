// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"

	"github.com/kraklabs/atlas/pkg/confluence"
)

// SearchUserArgs holds arguments for the user-directory search tool.
type SearchUserArgs struct {
	// Query is free text matched against display names and email addresses.
	Query string

	// Limit caps the result count. 0 keeps the remote default.
	Limit int
}

// SearchUser searches the user directory and returns one
// {accountId, displayName, email} block per match, in remote order. Email is
// null when the account's privacy settings hide the address.
func SearchUser(ctx context.Context, client API, args SearchUserArgs) (*Result, error) {
	if err := requireString("query", args.Query); err != nil {
		return nil, err
	}

	users, err := client.SearchUsers(ctx, args.Query, args.Limit)
	if err != nil {
		return nil, err
	}
	return listEnvelope(users, func(u confluence.User) UserEntry {
		return UserEntry{AccountID: u.AccountID, DisplayName: u.DisplayName, Email: u.EmailAddress}
	})
}
