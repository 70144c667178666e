// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for CLI commands run with --json.

package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/export"
)

// JSONResponse is the envelope every --json command prints.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Error     *string     `json:"error"`
	Timestamp string      `json:"timestamp"`
	Command   string      `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a failed response. data may be nil.
func NewJSONErrorResponse(command string, err error, data interface{}) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      data,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// SendData is the data printed by send --json.
type SendData struct {
	Verdict  *export.Document `json:"verdict"`
	HTMLPath string           `json:"html_path,omitempty"`
}

// StatusData is the data printed by status --json.
type StatusData struct {
	BaseURL   string `json:"base_url"`
	Reachable bool   `json:"reachable"`
	Status    string `json:"status,omitempty"`
	Service   string `json:"service,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// ClearData is the data printed by logs/history --clear --json.
type ClearData struct {
	Cleared string `json:"cleared"`
}

// ConfigPathData is the data printed by config path --json.
type ConfigPathData struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
