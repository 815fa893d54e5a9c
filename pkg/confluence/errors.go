// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package confluence

import (
	"fmt"
	"strings"
)

// ConfigError reports missing client configuration. It is returned by New
// before any network activity so that a broken environment fails fast
// instead of surfacing as a confusing HTTP error later.
type ConfigError struct {
	// Missing lists the configuration fields that were empty.
	Missing []string
}

func (e *ConfigError) Error() string {
	return "confluence: missing configuration: " + strings.Join(e.Missing, ", ")
}

// TransportError reports that a remote call did not complete successfully:
// the request failed at the network level or the remote answered with a
// non-2xx status. Status is 0 when no response was received.
type TransportError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("confluence: %s returned status %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("confluence: %s request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports that the remote answered 2xx but the payload was not
// usable: undecodable JSON or a required field that the endpoint contract
// promises was absent. Kept distinct from TransportError so callers can tell
// "unreachable" from "malformed".
type ResponseError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("confluence: %s: %s", e.Endpoint, e.Reason)
}

func (e *ResponseError) Unwrap() error { return e.Err }
