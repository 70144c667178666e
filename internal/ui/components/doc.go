// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the careerdesk TUI.

Components never own application state. Each one reads a value (a
verdict.State, a panels view, a thread) and returns a string, so the same
state always draws the same way.

# Verdict

  - VerdictCard - stage list while loading, then the Approved, Flagged or
    Error card with gauge, scorecard and optional thread
  - RenderGauge - confidence meter with needle, percent, label and category
  - RenderScorecard - five score bars, overall score and feedback
  - RenderStages - the five pipeline stages with shape indicators

# Thread and panels

  - RenderThread / RenderBubble - conversation bubbles
  - RenderHistoryPanel / RenderLogPanel - server-owned history views

# Chrome

  - Header - brand, agent name and service health
  - StatusBar - status, key help (bubbles/help) and log count
  - Spinner - bubbles spinner with elapsed time
  - Toasts - auto-dismissing notices

Text that came from the service or the user is passed through
util.EscapeTerminal before it is styled.
*/
package components
