// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands.
//
// Handlers always return errors; main decides how to display them and
// which exit code to use.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid usage or a missing submission field
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the service could not be reached
	ExitNetworkError = 5
	// ExitServiceError indicates the service answered with an error
	ExitServiceError = 6
	// ExitTimeoutError indicates a request timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "history"
	Action  string // e.g. "clear"
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents invalid user input. Fields, when set, lists
// every missing submission field in form order.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
	Fields  []string
}

func (e *ValidationError) Error() string {
	var msg string
	if len(e.Fields) > 0 {
		msg = "missing required fields: " + strings.Join(e.Fields, ", ")
	} else {
		msg = fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
		if e.Value != "" {
			msg += fmt.Sprintf(" (got: %s)", e.Value)
		}
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ConfigError wraps a failure to read or write configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// reportedError marks an error whose details were already printed as part
// of the command's normal output. It still selects the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w, as JSON when jsonMode is set. Errors the
// command already reported are skipped.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}

	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON writes err as a JSON object.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":   err.Error(),
		"success": false,
	}

	var (
		cmdErr    *CommandError
		valErr    *ValidationError
		clientErr *api.ClientError
	)
	switch {
	case errors.As(err, &valErr):
		output["error_type"] = "validation_error"
		if len(valErr.Fields) > 0 {
			output["fields"] = valErr.Fields
		} else {
			output["field"] = valErr.Field
			output["reason"] = valErr.Reason
		}
	case errors.As(err, &clientErr):
		output["error_type"] = clientErr.Type.String()
		if clientErr.StatusCode != 0 {
			output["status_code"] = clientErr.StatusCode
		}
	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	switch {
	case api.IsTimeout(err):
		return ExitTimeoutError
	case api.IsTransport(err):
		return ExitNetworkError
	case api.IsServer(err):
		return ExitServiceError
	}
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		return ExitServiceError
	}

	return ExitGeneralError
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
