// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package confluence

// Content is a single content item (page, blog post, ...) as returned by the
// Confluence Cloud REST API. Only the fields the tools consume are declared;
// the remote sends far more and the rest is intentionally ignored.
type Content struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  *Body  `json:"body,omitempty"`
}

// Body holds the representations of a content item's body. Each
// representation is only present when it was requested via expand.
type Body struct {
	Storage    *BodyRepresentation `json:"storage,omitempty"`
	ExportView *BodyRepresentation `json:"export_view,omitempty"`
}

// BodyRepresentation is one rendering of a body: "storage" is Confluence
// storage format (XHTML-ish), "export_view" is rendered HTML.
type BodyRepresentation struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// ContentList is the paged collection shape shared by the content search and
// listing endpoints. Results preserves remote order.
type ContentList struct {
	Results []Content `json:"results"`
	Start   int       `json:"start"`
	Limit   int       `json:"limit"`
	Size    int       `json:"size"`
}

// User is a user-directory entry from the Jira Cloud user search API.
// EmailAddress is a pointer because the remote omits it entirely when the
// user's privacy settings hide it.
type User struct {
	AccountID    string  `json:"accountId"`
	DisplayName  string  `json:"displayName"`
	EmailAddress *string `json:"emailAddress,omitempty"`
}
