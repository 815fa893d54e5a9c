// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package tools implements the atlas tool set: six stateless operations that
// each issue one remote call through the API interface and normalize the
// response into an ordered envelope of text blocks.
//
// Every tool follows the same shape: an Args struct, input validation that
// runs before any network call, one remote call, and envelope construction
// via a field selector. Collection tools emit one block per result item in
// remote order; single-entity tools emit exactly one block.
package tools
