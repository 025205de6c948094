// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/session"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a bad config file or setting
	ExitConfigError = 3
	// ExitAuthError indicates a missing, rejected or expired session
	ExitAuthError = 4
	// ExitNetworkError indicates the server could not be reached
	ExitNetworkError = 5
)

// ErrNotSignedIn is returned by commands that need a stored session.
var ErrNotSignedIn = errors.New("not signed in (run: companion login)")

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports bad command-line usage.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// NewUsageError creates a UsageError.
func NewUsageError(reason string) error {
	return &UsageError{Reason: reason}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w in the CLI's error format. Server errors are
// shown as the server worded them.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), app.Message(err))

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(w, DimStyle.Render("Run 'companion help' for usage."))
	}
}

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	var tty *TTYRequiredError
	if errors.As(err, &tty) {
		return ExitUsageError
	}

	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		return ExitConfigError
	}

	if errors.Is(err, ErrNotSignedIn) || errors.Is(err, session.ErrExpired) {
		return ExitAuthError
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		return ExitAuthError
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ExitNetworkError
	}

	return ExitGeneralError
}
