// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/atlas/pkg/confluence"
)

func TestSearchCQL(t *testing.T) {
	fake := &fakeAPI{contentList: pages([2]string{"10001", "Roadmap"}, [2]string{"10002", "Notes"})}

	res, err := SearchCQL(context.Background(), fake, SearchArgs{CQL: `type=page AND space="DEV"`})
	require.NoError(t, err)

	assert.Equal(t, `type=page AND space="DEV"`, fake.lastCQL)
	assert.Equal(t, []string{
		`{"id":"10001","title":"Roadmap"}`,
		`{"id":"10002","title":"Notes"}`,
	}, blockTexts(res))

	for _, block := range res.Blocks {
		assert.Equal(t, "text", block.Type)
	}
}

func TestSearchCQL_OrderPreserved(t *testing.T) {
	fake := &fakeAPI{contentList: pages(
		[2]string{"3", "c"}, [2]string{"1", "a"}, [2]string{"2", "b"},
	)}

	res, err := SearchCQL(context.Background(), fake, SearchArgs{CQL: "type=page"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`{"id":"3","title":"c"}`,
		`{"id":"1","title":"a"}`,
		`{"id":"2","title":"b"}`,
	}, blockTexts(res), "blocks must keep remote order")
}

func TestSearchCQL_EmptyResults(t *testing.T) {
	fake := &fakeAPI{contentList: pages()}

	res, err := SearchCQL(context.Background(), fake, SearchArgs{CQL: "type=page"})
	require.NoError(t, err)
	assert.Empty(t, res.Blocks)
}

func TestSearchCQL_Validation(t *testing.T) {
	fake := &fakeAPI{}

	for _, cqlQuery := range []string{"", "   "} {
		_, err := SearchCQL(context.Background(), fake, SearchArgs{CQL: cqlQuery})
		require.Error(t, err)

		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "cql", inputErr.Field)
	}

	assert.Equal(t, 0, fake.calls, "validation failures must issue zero remote calls")
}

func TestSearchCQL_RemoteErrorPropagates(t *testing.T) {
	wantErr := &confluence.TransportError{Endpoint: "content/search", Status: 503}
	fake := &fakeAPI{err: wantErr}

	_, err := SearchCQL(context.Background(), fake, SearchArgs{CQL: "type=page"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wantErr) || errors.As(err, &wantErr), "remote error must surface unmodified")
}
