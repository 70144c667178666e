// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// TOASTS
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastKindStatus ToastKind = iota
	ToastKindError
	ToastKindWarning
	ToastKindSuccess
)

// DefaultToastDuration is the auto-dismiss duration for status toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is longer so errors can be read.
const ErrorToastDuration = 8 * time.Second

// Toast is a non-blocking notice (export written, config reloaded).
type Toast struct {
	ID       int
	Message  string
	Kind     ToastKind
	Duration time.Duration
}

// ToastExpiredMsg dismisses the toast with the given ID.
type ToastExpiredMsg struct {
	ID int
}

// Toasts holds the visible toasts, oldest first. It is a value type.
type Toasts struct {
	nextID int
	items  []Toast
}

// Add shows a toast and returns the command that dismisses it later.
func (t Toasts) Add(kind ToastKind, message string) (Toasts, tea.Cmd) {
	t.nextID++
	d := DefaultToastDuration
	if kind == ToastKindError {
		d = ErrorToastDuration
	}
	toast := Toast{ID: t.nextID, Message: message, Kind: kind, Duration: d}
	t.items = append(append([]Toast(nil), t.items...), toast)

	id := toast.ID
	return t, tea.Tick(d, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} })
}

// Dismiss removes a toast by ID.
func (t Toasts) Dismiss(id int) Toasts {
	kept := make([]Toast, 0, len(t.items))
	for _, item := range t.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	t.items = kept
	return t
}

// Items returns the visible toasts.
func (t Toasts) Items() []Toast {
	return t.items
}

// View renders the toasts, one per line, right-aligned to width.
func (t Toasts) View(theme *styles.Theme, width int) string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		lines = append(lines, renderToast(theme, item))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, lines...))
}

func renderToast(theme *styles.Theme, toast Toast) string {
	msg := util.EscapeTerminal(toast.Message)
	switch toast.Kind {
	case ToastKindError:
		return theme.ErrorStyle.Render(styles.StatusIndicators.Error + " " + msg)
	case ToastKindWarning:
		return theme.WarningStyle.Render(styles.StatusIndicators.Warning + " " + msg)
	case ToastKindSuccess:
		return theme.SuccessStyle.Render(styles.StatusIndicators.Success + " " + msg)
	default:
		return theme.InfoStyle.Render(styles.StatusIndicators.Info + " " + msg)
	}
}
