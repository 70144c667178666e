// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
)

// =============================================================================
// FORM FIELDS
// =============================================================================

// Field indexes, in focus order.
const (
	FieldName = iota
	FieldEmail
	FieldSubject
	FieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Your name", "Your email", "Subject", "Message"}

// fieldKeys match the names reported by api.SubmissionError.
var fieldKeys = [fieldCount]string{"sender_name", "sender_email", "subject", "message"}

// FieldIndex maps a submission field name to its form index, or -1.
func FieldIndex(name string) int {
	for i, k := range fieldKeys {
		if k == name {
			return i
		}
	}
	return -1
}

// =============================================================================
// FORM
// =============================================================================

// Form holds the four submission inputs. It keeps its values across resets
// so a message can be resent or tweaked.
type Form struct {
	inputs  [FieldMessage]textinput.Model
	message textarea.Model
	focused int
	width   int
}

// NewForm creates the form with the first field focused.
func NewForm() Form {
	f := Form{width: 60}
	placeholders := [FieldMessage]string{"Jane Recruiter", "jane@company.com", "Opportunity at Company"}
	limits := [FieldMessage]int{120, 254, 200}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		f.inputs[i] = in
	}

	ta := textarea.New()
	ta.Placeholder = "Write your message..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 10000
	ta.SetHeight(6)
	f.message = ta

	f.Focus(FieldName)
	return f
}

// Focused returns the focused field index.
func (f Form) Focused() int {
	return f.focused
}

// Focus moves focus to field i.
func (f *Form) Focus(i int) tea.Cmd {
	if i < 0 || i >= fieldCount {
		return nil
	}
	f.blurAll()
	f.focused = i
	if i == FieldMessage {
		return f.message.Focus()
	}
	return f.inputs[i].Focus()
}

// Next focuses the following field, wrapping around.
func (f *Form) Next() tea.Cmd {
	return f.Focus((f.focused + 1) % fieldCount)
}

// Prev focuses the preceding field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	return f.Focus((f.focused + fieldCount - 1) % fieldCount)
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	f.blurAll()
}

func (f *Form) blurAll() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.message.Blur()
}

// SetWidth sizes every input to width columns.
func (f *Form) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	f.width = width
	// Border and padding take four columns.
	for i := range f.inputs {
		f.inputs[i].Width = width - 4
	}
	f.message.SetWidth(width - 4)
}

// SetValues fills the form.
func (f *Form) SetValues(sub api.Submission) {
	f.inputs[FieldName].SetValue(sub.SenderName)
	f.inputs[FieldEmail].SetValue(sub.SenderEmail)
	f.inputs[FieldSubject].SetValue(sub.Subject)
	f.message.SetValue(sub.Message)
}

// Submission returns the current values, untrimmed.
func (f Form) Submission() api.Submission {
	return api.Submission{
		SenderName:  f.inputs[FieldName].Value(),
		SenderEmail: f.inputs[FieldEmail].Value(),
		Subject:     f.inputs[FieldSubject].Value(),
		Message:     f.message.Value(),
	}
}

// Update routes msg to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	var cmd tea.Cmd
	if f.focused == FieldMessage {
		f.message, cmd = f.message.Update(msg)
		return f, cmd
	}
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

// View renders the labelled fields and the submit button.
func (f Form) View(theme *styles.Theme, busy bool) string {
	var sb strings.Builder
	for i := 0; i < fieldCount; i++ {
		label, box := theme.FieldLabel, theme.FieldBox
		if i == f.focused {
			label, box = theme.FieldLabelFocused, theme.FieldBoxFocused
		}
		var body string
		if i == FieldMessage {
			body = f.message.View()
		} else {
			body = f.inputs[i].View()
		}
		sb.WriteString(label.Render(fieldLabels[i]))
		sb.WriteString("\n")
		sb.WriteString(box.Width(f.width - 2).Render(body))
		sb.WriteString("\n")
	}

	if busy {
		sb.WriteString(theme.ButtonBusy.Render("Waiting for the previous request..."))
	} else {
		sb.WriteString(theme.Button.Render("Send message (ctrl+s)"))
	}
	return sb.String()
}
