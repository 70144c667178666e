// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small text and file helpers shared by careerdesk.
//
// # Escaping
//
// Every string received from the evaluation service is untrusted. Text drawn
// in the terminal goes through EscapeTerminal, text written to HTML goes
// through EscapeMarkup. Both are total functions: empty in, empty out, and
// non-ASCII passes through unchanged.
//
// # Text
//
//   - Snippet: rune-safe truncation with a trailing "..."
//   - TruncateWidth: display-width truncation for panel columns
//   - Plural: "1 revision" / "2 revisions"
//   - FormatScore: "8.5" / "9" score rendering
//
// # Files
//
//   - AtomicWriteFile: temp file + fsync + rename
package util
