// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a finished verdict to disk.
//
// Two formats are supported:
//
//   - HTML: a standalone page with the verdict card, an SVG confidence
//     gauge, the critic score bars and the conversation thread. Every piece
//     of service or user text is markup-escaped.
//   - JSON: a machine-readable summary of the same verdict.
//
// # Usage
//
//	opts := export.DefaultOptions()
//	opts.OutputDir = cfg.UI.ExportDir
//	path, err := export.ExportHTML(state, opts)
//
// Only terminal verdicts (Approved, FlaggedUnknown, Error) can be exported.
package export
