// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestListPagesByUser pins the generated query byte-for-byte: the remote
// matches on it and so do downstream consumers.
func TestListPagesByUser(t *testing.T) {
	fake := &fakeAPI{contentList: pages([2]string{"40001", "Design doc"})}

	res, err := ListPagesByUser(context.Background(), fake, ListByCreatorArgs{AccountID: "abc-123"})
	require.NoError(t, err)

	assert.Equal(t, `type=page AND creator="abc-123"`, fake.lastCQL)
	assert.Equal(t, []string{`{"id":"40001","title":"Design doc"}`}, blockTexts(res))
}

// TestListPagesByUser_QuotedAccountID verifies an account id containing
// quotes cannot corrupt the generated query.
func TestListPagesByUser_QuotedAccountID(t *testing.T) {
	fake := &fakeAPI{contentList: pages()}

	_, err := ListPagesByUser(context.Background(), fake, ListByCreatorArgs{AccountID: `x" OR type=blogpost`})
	require.NoError(t, err)

	assert.Equal(t, `type=page AND creator="x\" OR type=blogpost"`, fake.lastCQL)
}

func TestListPagesByUser_Validation(t *testing.T) {
	fake := &fakeAPI{}

	_, err := ListPagesByUser(context.Background(), fake, ListByCreatorArgs{})
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "userAccountId", inputErr.Field)
	assert.Equal(t, 0, fake.calls)
}
