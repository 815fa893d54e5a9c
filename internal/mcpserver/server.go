// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package mcpserver wires the atlas tool set into an MCP server.
//
// This is the composition root for the MCP surface: it owns the tool
// definitions (names and parameter schemas are a published contract), binds
// each definition to its implementation in pkg/tools, and registers the CQL
// syntax guide resource. No business logic lives here.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kraklabs/atlas/internal/metrics"
	"github.com/kraklabs/atlas/pkg/confluence"
	"github.com/kraklabs/atlas/pkg/tools"
)

// CQLGuideURI identifies the static CQL syntax guide resource.
const CQLGuideURI = "confluence://cql-guide"

// pageNote documents the single-page contract in every list tool
// description: the remote's page-size default applies and no client-side
// pagination is performed.
const pageNote = " Returns only the first page of results (the remote's page-size default)."

// Options configures server construction.
type Options struct {
	// Version is reported to MCP clients during initialization.
	Version string

	// Logger receives one line per tool invocation. nil disables logging.
	Logger *slog.Logger
}

// New builds the MCP server with all six tools and the CQL guide resource
// registered against the given client.
func New(client tools.API, opts Options) *server.MCPServer {
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"atlas",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions("Tools for querying a Confluence Cloud site: CQL search, "+
			"page retrieval, space and hierarchy listing, and user-directory search. "+
			"Read the confluence://cql-guide resource for CQL syntax."),
	)

	h := handlers{client: client, logger: opts.Logger}

	s.AddTool(searchCQLTool(), h.wrap("confluence_search_cql", h.searchCQL))
	s.AddTool(getPageTool(), h.wrap("confluence_get_page_by_id", h.getPage))
	s.AddTool(listSpaceTool(), h.wrap("confluence_list_pages_in_space", h.listSpace))
	s.AddTool(listChildrenTool(), h.wrap("confluence_list_page_children", h.listChildren))
	s.AddTool(listByCreatorTool(), h.wrap("confluence_list_pages_by_user", h.listByCreator))
	s.AddTool(searchUserTool(), h.wrap("search_user", h.searchUser))

	s.AddResource(cqlGuideResource(), readCQLGuide)

	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// Definitions returns the tool definitions, for listing outside a live
// server (atlas tools).
func Definitions() []mcp.Tool {
	return []mcp.Tool{
		searchCQLTool(),
		getPageTool(),
		listSpaceTool(),
		listChildrenTool(),
		listByCreatorTool(),
		searchUserTool(),
	}
}

func searchCQLTool() mcp.Tool {
	return mcp.NewTool("confluence_search_cql",
		mcp.WithDescription("Search Confluence content with a raw CQL query. "+
			"Each result block is a JSON object with id and title."+pageNote),
		mcp.WithString("cql",
			mcp.Required(),
			mcp.Description(`CQL query, e.g. type=page AND space="DEV"`),
		),
	)
}

func getPageTool() mcp.Tool {
	return mcp.NewTool("confluence_get_page_by_id",
		mcp.WithDescription("Fetch a single Confluence page with its body as plain text. "+
			"The result block is a JSON object with id, title and body."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Content identifier of the page"),
		),
	)
}

func listSpaceTool() mcp.Tool {
	return mcp.NewTool("confluence_list_pages_in_space",
		mcp.WithDescription("List the pages of a Confluence space. "+
			"Each result block is a JSON object with id and title."+pageNote),
		mcp.WithString("spaceKey",
			mcp.Required(),
			mcp.Description("Short key of the space, e.g. DEV"),
		),
	)
}

func listChildrenTool() mcp.Tool {
	return mcp.NewTool("confluence_list_page_children",
		mcp.WithDescription("List the direct child pages of a Confluence page. "+
			"Each result block is a JSON object with id and title."+pageNote),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Content identifier of the parent page"),
		),
	)
}

func listByCreatorTool() mcp.Tool {
	return mcp.NewTool("confluence_list_pages_by_user",
		mcp.WithDescription("List pages created by a user, by account id. "+
			"Each result block is a JSON object with id and title."+pageNote),
		mcp.WithString("userAccountId",
			mcp.Required(),
			mcp.Description("Opaque account identifier of the creator"),
		),
	)
}

func searchUserTool() mcp.Tool {
	return mcp.NewTool("search_user",
		mcp.WithDescription("Search the user directory by name or email. "+
			"Each result block is a JSON object with accountId, displayName and email "+
			"(email is null when hidden by privacy settings)."+pageNote),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free text matched against display names and email addresses"),
		),
	)
}

func cqlGuideResource() mcp.Resource {
	return mcp.NewResource(CQLGuideURI, "CQL Syntax Guide",
		mcp.WithResourceDescription("Reference for Confluence Query Language: operators, fields, dates, ordering"),
		mcp.WithMIMEType("text/markdown"),
	)
}

func readCQLGuide(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     cqlGuide,
		},
	}, nil
}

// handlers binds the tool implementations to one client.
type handlers struct {
	client tools.API
	logger *slog.Logger
}

// toolFunc is a tool implementation already adapted to string arguments.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error)

// wrap adapts a toolFunc into an MCP handler: it assigns a request id, logs
// and measures the invocation, and converts errors into tool-error results
// so a failing call never crashes the server or poisons other invocations.
func (h handlers) wrap(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		start := time.Now()

		res, err := fn(ctx, req)
		metrics.ObserveTool(name, err != nil)

		if err != nil {
			if h.logger != nil {
				h.logger.Error("tool failed",
					"tool", name,
					"request_id", requestID,
					"elapsed", time.Since(start),
					"error", err,
				)
			}
			return mcp.NewToolResultError(errorKind(err) + ": " + err.Error()), nil
		}

		if h.logger != nil {
			h.logger.Info("tool completed",
				"tool", name,
				"request_id", requestID,
				"elapsed", time.Since(start),
				"blocks", len(res.Blocks),
			)
		}

		content := make([]mcp.Content, 0, len(res.Blocks))
		for _, block := range res.Blocks {
			content = append(content, mcp.NewTextContent(block.Text))
		}
		return &mcp.CallToolResult{Content: content}, nil
	}
}

// errorKind labels an error with its taxonomy category so MCP callers can
// distinguish unreachable from malformed from misuse.
func errorKind(err error) string {
	var cfgErr *confluence.ConfigError
	var transportErr *confluence.TransportError
	var respErr *confluence.ResponseError
	var inputErr *tools.InputError
	switch {
	case errors.As(err, &inputErr):
		return "invalid arguments"
	case errors.As(err, &cfgErr):
		return "configuration error"
	case errors.As(err, &transportErr):
		return "remote transport error"
	case errors.As(err, &respErr):
		return "remote response error"
	default:
		return "internal error"
	}
}

// stringArg extracts a required string parameter, rejecting missing,
// non-string and blank values before any handler logic runs.
func stringArg(req mcp.CallToolRequest, name string) (string, error) {
	value, err := req.RequireString(name)
	if err != nil {
		return "", &tools.InputError{Field: name, Reason: "must be a non-empty string"}
	}
	return value, nil
}

func (h handlers) searchCQL(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error) {
	cqlQuery, err := stringArg(req, "cql")
	if err != nil {
		return nil, err
	}
	return tools.SearchCQL(ctx, h.client, tools.SearchArgs{CQL: cqlQuery})
}

func (h handlers) getPage(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error) {
	id, err := stringArg(req, "id")
	if err != nil {
		return nil, err
	}
	return tools.GetPageByID(ctx, h.client, tools.GetPageArgs{ID: id})
}

func (h handlers) listSpace(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error) {
	spaceKey, err := stringArg(req, "spaceKey")
	if err != nil {
		return nil, err
	}
	return tools.ListPagesInSpace(ctx, h.client, tools.ListSpaceArgs{SpaceKey: spaceKey})
}

func (h handlers) listChildren(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error) {
	id, err := stringArg(req, "id")
	if err != nil {
		return nil, err
	}
	return tools.ListPageChildren(ctx, h.client, tools.ListChildrenArgs{ID: id})
}

func (h handlers) listByCreator(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error) {
	accountID, err := stringArg(req, "userAccountId")
	if err != nil {
		return nil, err
	}
	return tools.ListPagesByUser(ctx, h.client, tools.ListByCreatorArgs{AccountID: accountID})
}

func (h handlers) searchUser(ctx context.Context, req mcp.CallToolRequest) (*tools.Result, error) {
	query, err := stringArg(req, "query")
	if err != nil {
		return nil, err
	}
	return tools.SearchUser(ctx, h.client, tools.SearchUserArgs{Query: query})
}
