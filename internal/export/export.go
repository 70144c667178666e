// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/util"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// ErrNotTerminal is returned when the verdict has not resolved yet.
var ErrNotTerminal = errors.New("no finished verdict to export")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a verdict into one file format.
type Exporter interface {
	// Export converts a verdict to the target format and returns the content.
	Export(s verdict.State) ([]byte, error)

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory files are written to.
	// Default: current working directory
	OutputDir string

	// AgentName is named in the page footer.
	AgentName string

	// IncludeThread appends the conversation thread.
	IncludeThread bool

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string

	// Now stamps the file name and footer. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:     ".",
		AgentName:     "Agent",
		IncludeThread: true,
		Theme:         "dark",
	}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders s with exporter and writes the result atomically into
// opts.OutputDir. It returns the written path.
func ExportToFile(s verdict.State, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if !s.Phase.Terminal() {
		return "", ErrNotTerminal
	}

	content, err := exporter.Export(s)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := Filename(s, opts.now(), exporter.FileExtension())

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// ExportHTML exports s as an HTML page.
func ExportHTML(s verdict.State, opts *Options) (string, error) {
	return ExportToFile(s, NewHTMLExporter(opts), opts)
}

// ExportJSON exports s as a JSON document.
func ExportJSON(s verdict.State, opts *Options) (string, error) {
	return ExportToFile(s, NewJSONExporter(opts), opts)
}

// Filename builds "verdict_<sender>_<phase>_<stamp><ext>".
func Filename(s verdict.State, at time.Time, ext string) string {
	sender := s.Submission.SenderEmail
	if sender == "" {
		sender = s.Submission.SenderName
	}
	return fmt.Sprintf("verdict_%s_%s_%s%s",
		sanitizeFilename(sender),
		phaseSlug(s.Phase),
		at.Format("20060102_150405"),
		ext,
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func phaseSlug(p verdict.Phase) string {
	switch p {
	case verdict.PhaseApproved:
		return "approved"
	case verdict.PhaseFlagged:
		return "flagged"
	case verdict.PhaseError:
		return "error"
	default:
		return "pending"
	}
}

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	// Windows and Unix
	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "anonymous"
	}
	return string(result)
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
