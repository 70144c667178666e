// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/config"
)

// =============================================================================
// SUBMISSION MESSAGES
// =============================================================================

// submitResultMsg carries the outcome of the request started for Gen.
type submitResultMsg struct {
	Gen     uint64
	Payload *api.ResponsePayload
	Err     error
}

// =============================================================================
// SERVICE MESSAGES
// =============================================================================

// healthMsg reports a health probe.
type healthMsg struct {
	Resp *api.HealthResponse
	Err  error
}

// exportDoneMsg reports a finished export.
type exportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent by the config watcher after the file changed.
// Err is set when the new file could not be loaded; the running settings
// are then kept.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
