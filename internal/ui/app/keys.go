// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the submission screen.
type KeyMap struct {
	Submit        key.Binding
	NextField     key.Binding
	PrevField     key.Binding
	Back          key.Binding
	Export        key.Binding
	ToggleHistory key.Binding
	ToggleLogs    key.Binding
	ClearHistory  key.Binding
	ClearLogs     key.Binding
	Refresh       key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings. Printable keys are left to
// the form fields.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "new message"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export html"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "history"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "logs"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "clear history"),
		),
		ClearLogs: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("F5", "clear logs"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh panels"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
// Implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.ToggleLogs, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
// Implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextField, k.PrevField, k.Back},
		{k.ToggleHistory, k.ToggleLogs, k.ClearHistory, k.ClearLogs, k.Refresh},
		{k.Export, k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}
