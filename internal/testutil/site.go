// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package testutil provides a fake Atlassian site for tests.
//
// Site stands in for the Confluence content API and the Jira user-directory
// API behind an httptest server. Tests register canned responses per URL
// path and can inspect the requests the code under test issued.
//
// Example:
//
//	site := testutil.NewSite(t)
//	site.Respond("/wiki/rest/api/content/search", 200, `{"results":[]}`)
//	client, err := confluence.New(site.ClientConfig())
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/kraklabs/atlas/pkg/confluence"
)

// Call records one request the fake site received.
type Call struct {
	Path  string
	Query url.Values
	// Authorization is the raw Authorization header, for auth assertions.
	Authorization string
}

// Site is a fake Atlassian site backed by httptest.
type Site struct {
	server *httptest.Server

	mu       sync.Mutex
	calls    []Call
	handlers map[string]http.HandlerFunc
}

// NewSite starts a fake site. It is shut down automatically when the test
// finishes. Paths without a registered response answer 404.
func NewSite(t *testing.T) *Site {
	t.Helper()

	s := &Site{handlers: make(map[string]http.HandlerFunc)}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
		})
		handler := s.handlers[r.URL.Path]
		s.mu.Unlock()

		if handler == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no response registered for ` + r.URL.Path + `"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the fake site's base URL.
func (s *Site) URL() string { return s.server.URL }

// Respond registers a fixed status/body response for a path.
func (s *Site) Respond(path string, status int, body string) {
	s.RespondFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// RespondFunc registers a handler for a path.
func (s *Site) RespondFunc(path string, fn http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = fn
}

// Calls returns a copy of the requests received so far.
func (s *Site) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests the site has received.
func (s *Site) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// ClientConfig returns a client config pointed at the fake site with
// fabricated credentials.
func (s *Site) ClientConfig() confluence.Config {
	return confluence.Config{
		BaseURL:  s.server.URL,
		Email:    "dev@example.com",
		APIToken: "fake-token",
	}
}
