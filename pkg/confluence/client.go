// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package confluence provides an authenticated HTTP client for the Confluence
// Cloud content API and the Jira Cloud user-directory API.
//
// The client is stateless and safe for concurrent use; every method performs
// exactly one HTTP GET and decodes the response into the typed contracts in
// types.go. Errors are classified into ConfigError (bad local setup),
// TransportError (unreachable or non-2xx) and ResponseError (2xx but
// malformed) so callers can react to each distinctly.
package confluence

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultTimeout bounds a single remote call. The remote imposes no timeout
// of its own; without this a stuck request would hang the invocation forever.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of a non-2xx response body is carried into a
// TransportError message.
const maxErrorBody = 2048

// Config carries everything needed to construct a Client. All three string
// fields are required; Timeout and HTTPClient are optional.
type Config struct {
	// BaseURL is the site root, e.g. https://example.atlassian.net.
	BaseURL string

	// Email is the account email used for HTTP basic authentication.
	Email string

	// APIToken is the API token paired with Email.
	APIToken string

	// Timeout overrides DefaultTimeout when non-zero. Ignored when
	// HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to one Atlassian Cloud site. Construct it with New.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client

	// Observe, when set, is called after every remote request with the
	// endpoint label, HTTP status (0 for network failures) and duration.
	// Used to feed metrics without coupling this package to a registry.
	Observe func(endpoint string, status int, elapsed time.Duration)
}

// New validates cfg and constructs a Client. It performs no network I/O:
// a missing base URL, email or token fails here with a ConfigError rather
// than as a deferred HTTP failure on first use.
func New(cfg Config) (*Client, error) {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "base URL")
	}
	if cfg.Email == "" {
		missing = append(missing, "email")
	}
	if cfg.APIToken == "" {
		missing = append(missing, "API token")
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		email:      cfg.Email,
		token:      cfg.APIToken,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the configured site root.
func (c *Client) BaseURL() string { return c.baseURL }

// SearchContent runs a CQL search over the content store.
// limit 0 keeps the remote's own page-size default; only the first page is
// returned either way.
func (c *Client) SearchContent(ctx context.Context, cql string, limit int) (*ContentList, error) {
	q := url.Values{}
	q.Set("cql", cql)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out ContentList
	if err := c.get(ctx, "content/search", "/wiki/rest/api/content/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContent fetches a single content item by id, expanding the given body
// representations (e.g. "body.export_view", "body.storage").
func (c *Client) GetContent(ctx context.Context, id string, expand ...string) (*Content, error) {
	q := url.Values{}
	if len(expand) > 0 {
		expanded := expand[0]
		for _, e := range expand[1:] {
			expanded += "," + e
		}
		q.Set("expand", expanded)
	}
	var out Content
	if err := c.get(ctx, "content/get", "/wiki/rest/api/content/"+url.PathEscape(id), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SpaceContent lists pages in a space. limit 0 keeps the remote default.
func (c *Client) SpaceContent(ctx context.Context, spaceKey string, limit int) (*ContentList, error) {
	q := url.Values{}
	q.Set("spaceKey", spaceKey)
	q.Set("type", "page")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out ContentList
	if err := c.get(ctx, "content/space", "/wiki/rest/api/content", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChildPages lists the direct page children of a content item.
func (c *Client) ChildPages(ctx context.Context, id string, limit int) (*ContentList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out ContentList
	if err := c.get(ctx, "content/children", "/wiki/rest/api/content/"+url.PathEscape(id)+"/child/page", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchUsers searches the user directory by name or email. The endpoint
// returns a bare JSON array rather than a paged wrapper.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("maxResults", strconv.Itoa(limit))
	}
	var out []User
	if err := c.get(ctx, "user/search", "/rest/api/3/user/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs one authenticated GET and decodes the JSON response into out.
// endpoint is a stable label used for errors and metrics; path is the URL
// path under the base URL.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, time.Since(start))
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &TransportError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
		return &TransportError{Endpoint: endpoint, Status: resp.StatusCode, Body: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseError{Endpoint: endpoint, Reason: "undecodable JSON response", Err: err}
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, elapsed time.Duration) {
	if c.Observe != nil {
		c.Observe(endpoint, status, elapsed)
	}
}
