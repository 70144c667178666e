// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP/JSON boundary to the evaluation service.
package api

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport: the request never produced an HTTP response.
	ErrTypeTransport
	// ErrTypeServer: the service answered with a non-2xx status.
	ErrTypeServer
	// ErrTypeTimeout: the request deadline passed.
	ErrTypeTimeout
	// ErrTypeInvalidResponse: a 2xx body could not be decoded.
	ErrTypeInvalidResponse
)

// String returns a short name for logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeTransport:
		return "transport"
	case ErrTypeServer:
		return "server"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the evaluation service client.
type ClientError struct {
	Type    ErrorType
	Message string
	// StatusCode is set for ErrTypeServer.
	StatusCode int
	// Detail is the service's "detail" string, when it sent one.
	Detail string
	// Timeout is the deadline that expired, for ErrTypeTimeout.
	Timeout time.Duration
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches the bare sentinel of the same type.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// Sentinel errors for easy checking with errors.Is.
var (
	ErrTransport       = &ClientError{Type: ErrTypeTransport}
	ErrServer          = &ClientError{Type: ErrTypeServer}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

// IsServer checks if an error is a non-2xx response.
func IsServer(err error) bool {
	return errorType(err) == ErrTypeServer
}

// IsTransport checks if an error happened before any response arrived.
func IsTransport(err error) bool {
	return errorType(err) == ErrTypeTransport
}

func errorType(err error) ErrorType {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ErrTypeUnknown
}

// UserMessage returns the best-effort, human-readable message for err:
// the service's detail, else "Server error: <code>", else a description of
// the transport or timeout failure.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return err.Error()
	}
	switch clientErr.Type {
	case ErrTypeServer:
		if clientErr.Detail != "" {
			return clientErr.Detail
		}
		return fmt.Sprintf("Server error: %d", clientErr.StatusCode)
	case ErrTypeTimeout:
		if clientErr.Timeout > 0 {
			return fmt.Sprintf("Request timed out after %s", clientErr.Timeout)
		}
		return "Request timed out"
	case ErrTypeTransport:
		if clientErr.Cause != nil {
			return "Could not reach the evaluation service: " + clientErr.Cause.Error()
		}
		return "Could not reach the evaluation service"
	case ErrTypeInvalidResponse:
		return "Invalid response from the evaluation service"
	}
	return clientErr.Error()
}
