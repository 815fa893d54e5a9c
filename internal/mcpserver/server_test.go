// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/atlas/pkg/confluence"
	"github.com/kraklabs/atlas/pkg/tools"
)

// stubAPI implements tools.API with canned responses, counting calls so
// tests can assert that argument rejection never reaches the client.
type stubAPI struct {
	calls       int
	contentList *confluence.ContentList
	content     *confluence.Content
	users       []confluence.User
	err         error
}

func (s *stubAPI) SearchContent(context.Context, string, int) (*confluence.ContentList, error) {
	s.calls++
	return s.contentList, s.err
}

func (s *stubAPI) GetContent(context.Context, string, ...string) (*confluence.Content, error) {
	s.calls++
	return s.content, s.err
}

func (s *stubAPI) SpaceContent(context.Context, string, int) (*confluence.ContentList, error) {
	s.calls++
	return s.contentList, s.err
}

func (s *stubAPI) ChildPages(context.Context, string, int) (*confluence.ContentList, error) {
	s.calls++
	return s.contentList, s.err
}

func (s *stubAPI) SearchUsers(context.Context, string, int) ([]confluence.User, error) {
	s.calls++
	return s.users, s.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textContents(t *testing.T, res *mcp.CallToolResult) []string {
	t.Helper()
	out := make([]string, 0, len(res.Content))
	for _, c := range res.Content {
		tc, ok := c.(mcp.TextContent)
		require.True(t, ok, "expected text content, got %T", c)
		out = append(out, tc.Text)
	}
	return out
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 6)

	required := map[string]string{
		"confluence_search_cql":          "cql",
		"confluence_get_page_by_id":      "id",
		"confluence_list_pages_in_space": "spaceKey",
		"confluence_list_page_children":  "id",
		"confluence_list_pages_by_user":  "userAccountId",
		"search_user":                    "query",
	}

	for _, def := range defs {
		param, ok := required[def.Name]
		require.True(t, ok, "unexpected tool %s", def.Name)
		assert.Equal(t, []string{param}, def.InputSchema.Required, def.Name)
		assert.Contains(t, def.InputSchema.Properties, param, def.Name)
		assert.NotEmpty(t, def.Description, def.Name)
		delete(required, def.Name)
	}
	assert.Empty(t, required, "every tool must be defined")
}

func TestWrap_Success(t *testing.T) {
	stub := &stubAPI{contentList: &confluence.ContentList{Results: []confluence.Content{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
	}}}
	h := handlers{client: stub}
	handler := h.wrap("confluence_search_cql", h.searchCQL)

	res, err := handler(context.Background(), callRequest("confluence_search_cql", map[string]any{"cql": "type=page"}))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.False(t, res.IsError)
	assert.Equal(t, []string{
		`{"id":"1","title":"a"}`,
		`{"id":"2","title":"b"}`,
	}, textContents(t, res))
	assert.Equal(t, 1, stub.calls)
}

func TestWrap_MissingArgument(t *testing.T) {
	stub := &stubAPI{}
	h := handlers{client: stub}
	handler := h.wrap("confluence_search_cql", h.searchCQL)

	res, err := handler(context.Background(), callRequest("confluence_search_cql", map[string]any{}))
	require.NoError(t, err, "argument failures surface as tool errors, not transport errors")
	require.NotNil(t, res)

	assert.True(t, res.IsError)
	texts := textContents(t, res)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "invalid arguments")
	assert.Equal(t, 0, stub.calls, "rejected arguments must not reach the remote")
}

func TestWrap_BlankArgument(t *testing.T) {
	stub := &stubAPI{}
	h := handlers{client: stub}
	handler := h.wrap("confluence_get_page_by_id", h.getPage)

	res, err := handler(context.Background(), callRequest("confluence_get_page_by_id", map[string]any{"id": "   "}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	assert.Equal(t, 0, stub.calls)
}

func TestWrap_RemoteError(t *testing.T) {
	stub := &stubAPI{err: &confluence.TransportError{Endpoint: "content/search", Status: 503}}
	h := handlers{client: stub}
	handler := h.wrap("confluence_search_cql", h.searchCQL)

	res, err := handler(context.Background(), callRequest("confluence_search_cql", map[string]any{"cql": "type=page"}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	texts := textContents(t, res)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "remote transport error")
}

func TestHandlers_AllToolsRoute(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
	}{
		{"confluence_search_cql", map[string]any{"cql": "type=page"}},
		{"confluence_get_page_by_id", map[string]any{"id": "10001"}},
		{"confluence_list_pages_in_space", map[string]any{"spaceKey": "DEV"}},
		{"confluence_list_page_children", map[string]any{"id": "10001"}},
		{"confluence_list_pages_by_user", map[string]any{"userAccountId": "abc-123"}},
		{"search_user", map[string]any{"query": "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			stub := &stubAPI{
				contentList: &confluence.ContentList{},
				content: &confluence.Content{ID: "10001", Title: "Roadmap", Body: &confluence.Body{
					ExportView: &confluence.BodyRepresentation{Value: "<p>plan</p>", Representation: "export_view"},
				}},
			}
			h := handlers{client: stub}

			byName := map[string]toolFunc{
				"confluence_search_cql":          h.searchCQL,
				"confluence_get_page_by_id":      h.getPage,
				"confluence_list_pages_in_space": h.listSpace,
				"confluence_list_page_children":  h.listChildren,
				"confluence_list_pages_by_user":  h.listByCreator,
				"search_user":                    h.searchUser,
			}

			handler := h.wrap(tt.tool, byName[tt.tool])
			res, err := handler(context.Background(), callRequest(tt.tool, tt.args))
			require.NoError(t, err)
			assert.False(t, res.IsError)
			assert.Equal(t, 1, stub.calls)
		})
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"input", &tools.InputError{Field: "cql"}, "invalid arguments"},
		{"config", &confluence.ConfigError{Missing: []string{"base URL"}}, "configuration error"},
		{"transport", &confluence.TransportError{Status: 500}, "remote transport error"},
		{"response", &confluence.ResponseError{Reason: "bad JSON"}, "remote response error"},
		{"other", context.Canceled, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, errorKind(tt.err))
		})
	}
}

func TestReadCQLGuide(t *testing.T) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = CQLGuideURI

	contents, err := readCQLGuide(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, CQLGuideURI, text.URI)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "CQL")
	assert.Contains(t, text.Text, "ORDER BY")
}
