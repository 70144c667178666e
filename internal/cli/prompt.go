// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/config"
)

// ErrPromptAborted is returned when the user cancels a prompt with ctrl+c.
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter reads one line of input per call.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// =============================================================================
// LINE PROMPTER
// =============================================================================

// LinePrompter prompts with line editing and a persistent input history.
type LinePrompter struct {
	line        *liner.State
	historyFile string
}

// NewLinePrompter creates a prompter and loads the send history.
func NewLinePrompter() *LinePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.SendHistoryPath()
	if err != nil {
		historyFile = ""
	}

	p := &LinePrompter{line: line, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			p.line.ReadHistory(f)
			f.Close()
		}
	}
	return p
}

// Prompt reads a line. Non-empty input is added to the history.
func (p *LinePrompter) Prompt(label string) (string, error) {
	input, err := p.line.Prompt(label)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrPromptAborted
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history (owner read/write only) and restores the terminal.
func (p *LinePrompter) Close() error {
	if p.historyFile != "" && config.EnsureConfigDir() == nil {
		if f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			p.line.WriteHistory(f)
			f.Close()
		}
	}
	return p.line.Close()
}

// =============================================================================
// SUBMISSION PROMPTS
// =============================================================================

// promptMissing asks for every field of sub that is empty after trimming,
// in form order. Filled fields are left alone.
func promptMissing(p Prompter, sub api.Submission) (api.Submission, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"Name: ", &sub.SenderName},
		{"Email: ", &sub.SenderEmail},
		{"Subject: ", &sub.Subject},
		{"Message: ", &sub.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.value) != "" {
			continue
		}
		input, err := p.Prompt(f.label)
		if err != nil {
			return sub, err
		}
		*f.value = input
	}
	return sub, nil
}
