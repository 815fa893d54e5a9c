// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package confluence

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BodyText extracts the body of a content item as readable plain text.
// It prefers the export view (rendered HTML) and falls back to storage
// format. When neither representation is present it returns a ResponseError:
// a page fetched for its body must never silently degrade to an empty string.
func BodyText(c *Content) (string, error) {
	rep := bodyRepresentation(c)
	if rep == nil {
		return "", &ResponseError{
			Endpoint: "content/get",
			Reason:   "content " + c.ID + " has no body.export_view or body.storage representation",
		}
	}
	return HTMLToText(rep.Value), nil
}

// RawBody returns the body markup verbatim, preferring export view.
// Same absence rule as BodyText.
func RawBody(c *Content) (string, error) {
	rep := bodyRepresentation(c)
	if rep == nil {
		return "", &ResponseError{
			Endpoint: "content/get",
			Reason:   "content " + c.ID + " has no body.export_view or body.storage representation",
		}
	}
	return rep.Value, nil
}

func bodyRepresentation(c *Content) *BodyRepresentation {
	if c.Body == nil {
		return nil
	}
	if c.Body.ExportView != nil {
		return c.Body.ExportView
	}
	if c.Body.Storage != nil {
		return c.Body.Storage
	}
	return nil
}

// HTMLToText converts HTML (or Confluence storage XHTML) into plain text.
// Block elements become line breaks, list items are bulleted, headings are
// prefixed with '#', links keep their target as "text (href)". Script and
// style subtrees are dropped. Input that fails to parse is returned as-is:
// a lossy body beats a lost one.
func HTMLToText(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return markup
	}

	var sb strings.Builder
	renderText(&sb, root)
	return tidyText(sb.String())
}

func renderText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.Br:
			sb.WriteString("\n")
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			sb.WriteString("\n\n")
			sb.WriteString(strings.Repeat("#", int(n.Data[1]-'0')))
			sb.WriteString(" ")
		case atom.P, atom.Div, atom.Table, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre:
			sb.WriteString("\n\n")
		case atom.Li:
			sb.WriteString("\n- ")
		case atom.Tr:
			sb.WriteString("\n")
		case atom.Td, atom.Th:
			sb.WriteString(" | ")
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderText(sb, child)
	}

	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		if href := attrValue(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
			sb.WriteString(" (")
			sb.WriteString(href)
			sb.WriteString(")")
		}
	}
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// collapseSpace folds runs of whitespace into single spaces while keeping a
// single leading/trailing space when the original had one, so spacing between
// adjacent inline nodes survives.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r' {
		out = " " + out
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\t' || last == '\n' || last == '\r' {
		out += " "
	}
	return out
}

// tidyText trims trailing space per line and collapses runs of blank lines.
func tidyText(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
