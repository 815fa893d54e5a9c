// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the atlas CLI.
//
// It defines UserError, carrying what went wrong, why, and how to fix it,
// plus consistent exit codes per error category. The tool and client
// packages raise their own typed errors (confluence.ConfigError,
// confluence.TransportError, confluence.ResponseError, tools.InputError);
// FromError maps those onto UserError for terminal display.
//
// # Exit codes
//
//   - ExitSuccess (0): successful execution
//   - ExitConfig (1): configuration errors (missing credentials or base URL)
//   - ExitNetwork (3): network/API errors (unreachable remote, non-2xx)
//   - ExitInput (4): invalid user input (bad arguments, empty parameters)
//   - ExitNotFound (6): resource not found
//   - ExitResponse (7): remote answered but the payload was malformed
//   - ExitInternal (10): internal errors (bugs, panics)
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/atlas/pkg/confluence"
	"github.com/kraklabs/atlas/pkg/tools"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates configuration errors (missing credentials/base URL).
	ExitConfig = 1

	// ExitNetwork indicates network or API errors (connection failed, non-2xx).
	ExitNetwork = 3

	// ExitInput indicates invalid user input.
	ExitInput = 4

	// ExitNotFound indicates a requested resource does not exist.
	ExitNotFound = 6

	// ExitResponse indicates the remote answered but the payload was unusable.
	ExitResponse = 7

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	ExitInternal = 10
)

// UserError represents an error with structured context for end users:
// what went wrong (Message), why (Cause), and how to fix it (Fix). It
// carries an exit code for consistent CLI behavior and optionally wraps an
// underlying error for errors.Is/As.
type UserError struct {
	Message  string
	Cause    string
	Fix      string
	ExitCode int
	Err      error
}

// Error implements the error interface, appending the underlying error's
// message when present.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error with exit code ExitConfig.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewNetworkError creates a network error with exit code ExitNetwork.
func NewNetworkError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitNetwork, Err: err}
}

// NewInputError creates an input validation error with exit code ExitInput.
// Input errors don't wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewNotFoundError creates a resource-not-found error with exit code
// ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitNotFound}
}

// NewResponseError creates a malformed-remote-payload error with exit code
// ExitResponse.
func NewResponseError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitResponse, Err: err}
}

// NewInternalError creates an internal error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

// FromError maps a typed error from the client or tool layers onto a
// UserError with category-appropriate exit code and fix suggestion.
// A UserError passes through unchanged; anything unrecognized becomes an
// internal error.
func FromError(err error) *UserError {
	var ue *UserError
	if stderrors.As(err, &ue) {
		return ue
	}

	var cfgErr *confluence.ConfigError
	if stderrors.As(err, &cfgErr) {
		return NewConfigError(
			"Confluence client is not configured",
			"Missing: "+strings.Join(cfgErr.Missing, ", "),
			"Set CONFLUENCE_BASE_URL, CONFLUENCE_EMAIL and CONFLUENCE_API_TOKEN (or use a .env file)",
			err,
		)
	}

	var transportErr *confluence.TransportError
	if stderrors.As(err, &transportErr) {
		cause := "The request never completed"
		if transportErr.Status != 0 {
			cause = fmt.Sprintf("The remote answered with HTTP %d", transportErr.Status)
		}
		if transportErr.Status == 404 {
			return NewNotFoundError(
				"Remote resource not found",
				cause,
				"Check the id or space key and try again",
			)
		}
		return NewNetworkError(
			"Remote call failed",
			cause,
			"Check the base URL, your network, and the API token's permissions",
			err,
		)
	}

	var respErr *confluence.ResponseError
	if stderrors.As(err, &respErr) {
		return NewResponseError(
			"Remote response was malformed",
			respErr.Reason,
			"Retry; if it persists the remote API may have changed shape",
			err,
		)
	}

	var inputErr *tools.InputError
	if stderrors.As(err, &inputErr) {
		return NewInputError(
			"Invalid tool arguments",
			inputErr.Error(),
			"Supply a non-empty value for "+inputErr.Field,
		)
	}

	return NewInternalError(
		"Unexpected error",
		err.Error(),
		"This is a bug. Please report it at github.com/kraklabs/atlas/issues",
		err,
	)
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display: Error in
// red/bold, Cause in yellow, Fix in green. Color output respects NO_COLOR
// and the explicit noColor parameter; empty Cause or Fix lines are omitted.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON form for --json mode.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints the error and exits with the appropriate code. Non
// UserError values are mapped through FromError first. This function never
// returns for a non-nil error.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	ue := FromError(err)
	if jsonOutput {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		// Encoding failure is ignored since we're about to exit anyway.
		_ = enc.Encode(ue.ToJSON())
	} else {
		fmt.Fprint(os.Stderr, ue.Format(false))
	}
	os.Exit(ue.ExitCode)
}
