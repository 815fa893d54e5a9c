// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package mcpserver

import _ "embed"

// cqlGuide is the constant CQL reference served at CQLGuideURI.
//
//go:embed cql_guide.md
var cqlGuide string
