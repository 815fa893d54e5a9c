// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package cql builds CQL (Confluence Query Language) expressions.
//
// Queries that embed caller-supplied values must go through Quote so that a
// value containing quote characters cannot change the structure of the
// generated query.
package cql

import (
	"fmt"
	"strings"
)

// MaxQueryBytes bounds an inbound CQL expression. The remote rejects
// oversized queries anyway; checking locally gives a clearer error without
// a round trip.
const MaxQueryBytes = 8 << 10

// Quote wraps a value in double quotes, escaping backslashes and embedded
// quotes. For values without either, the output is simply `"value"`.
func Quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// PagesByCreator returns the query selecting pages created by the given
// account id: `type=page AND creator="<id>"`.
func PagesByCreator(accountID string) string {
	return fmt.Sprintf("type=page AND creator=%s", Quote(accountID))
}

// PagesInSpace returns the query selecting pages in a space by key.
func PagesInSpace(spaceKey string) string {
	return fmt.Sprintf("type=page AND space=%s", Quote(spaceKey))
}

// Validate checks an inbound raw CQL expression for local sanity: it must be
// non-empty and under MaxQueryBytes. It does not parse the grammar; the
// remote is the authority on CQL syntax.
func Validate(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("cql query is empty")
	}
	if len(query) > MaxQueryBytes {
		return fmt.Errorf("cql query exceeds %d bytes", MaxQueryBytes)
	}
	return nil
}
