// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - The logs and history commands.

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/careerdesk-tui/internal/panels"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// LOGS
// =============================================================================

// HandleLogs handles the "logs" command.
func HandleLogs(ctx context.Context, env *Env, args Args) error {
	if args.Clear {
		if err := env.Client.ClearLogs(ctx); err != nil {
			return NewCommandError("logs", "clear", "service rejected the request", err)
		}
		env.logger().Info("processing log cleared")
		return printCleared(env, args, "logs", "Processing log cleared.")
	}

	resp, err := env.Client.Logs(ctx)
	if err != nil {
		return NewCommandError("logs", "fetch", "could not load the processing log", err)
	}
	if args.JSON {
		return NewJSONResponse("logs", resp).Print(env.Out)
	}

	view := panels.BuildLogs(resp, env.location())
	fmt.Fprintln(env.Out, renderLogs(view))
	return nil
}

func renderLogs(v panels.LogView) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Processing Logs"))
	sb.WriteString(DimStyle.Render(fmt.Sprintf(" (%d)", v.Total)))
	sb.WriteString("\n")
	if v.Empty() {
		sb.WriteString(DimStyle.Render(panels.EmptyLogsText))
		return sb.String()
	}

	for _, l := range v.Entries {
		badge := SuccessStyle.Render("[" + l.Badge + "]")
		if !l.Approved {
			badge = WarningStyle.Render("[" + l.Badge + "]")
		}
		sb.WriteString("\n")
		sb.WriteString(badge + " " + ValueStyle.Render(util.EscapeTerminal(l.Sender)+" - "+util.EscapeTerminal(l.Subject)))
		sb.WriteString("\n")

		meta := []string{util.EscapeTerminal(l.Time)}
		for _, m := range []string{l.Score, l.Conf, l.Revisions} {
			if m != "" {
				meta = append(meta, m)
			}
		}
		sb.WriteString("    " + DimStyle.Render(strings.Join(meta, "  ")))
	}
	return sb.String()
}

// =============================================================================
// HISTORY
// =============================================================================

// HandleHistory handles the "history" command. With --email it prints that
// sender's thread; otherwise the per-sender index.
func HandleHistory(ctx context.Context, env *Env, args Args) error {
	if args.Clear {
		if err := env.Client.ClearConversations(ctx); err != nil {
			return NewCommandError("history", "clear", "service rejected the request", err)
		}
		env.logger().Info("conversation history cleared")
		return printCleared(env, args, "history", "Conversation history cleared.")
	}

	cfg := env.config()

	if args.Email != "" {
		resp, err := env.Client.Conversation(ctx, args.Email)
		if err != nil {
			return NewCommandError("history", "fetch", "could not load the conversation", err)
		}
		if args.JSON {
			return NewJSONResponse("history", resp).Print(env.Out)
		}
		bubbles := thread.BuildIn(resp.History, cfg.UI.AgentName, env.location())
		fmt.Fprintln(env.Out, renderThread(resp.Email, bubbles))
		return nil
	}

	resp, err := env.Client.Conversations(ctx)
	if err != nil {
		return NewCommandError("history", "fetch", "could not load conversations", err)
	}
	if args.JSON {
		return NewJSONResponse("history", resp).Print(env.Out)
	}
	view := panels.BuildHistory(resp, cfg.UI.SnippetLength, env.location())
	fmt.Fprintln(env.Out, renderHistory(view))
	return nil
}

func renderHistory(v panels.HistoryView) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Conversation History"))
	sb.WriteString("\n")
	if v.Empty() {
		sb.WriteString(DimStyle.Render(panels.EmptyHistoryText))
		return sb.String()
	}

	for _, s := range v.Senders {
		sb.WriteString("\n")
		sb.WriteString(ValueStyle.Render(util.EscapeTerminal(s.Email)) + "  " + DimStyle.Render(s.CountText))
		for _, e := range s.Entries {
			glyph := SuccessStyle.Render(e.Glyph)
			if !e.Approved {
				glyph = WarningStyle.Render(e.Glyph)
			}
			sb.WriteString("\n  " + glyph + " " + util.EscapeTerminal(e.Snippet) + "  " + DimStyle.Render(util.EscapeTerminal(e.Time)))
		}
	}
	return sb.String()
}

func renderThread(email string, bubbles []thread.Bubble) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Conversation with " + util.EscapeTerminal(email)))
	sb.WriteString("\n")
	if len(bubbles) == 0 {
		sb.WriteString(DimStyle.Render(panels.EmptyHistoryText))
		return sb.String()
	}

	for _, b := range bubbles {
		label := ValueStyle.Render(util.EscapeTerminal(b.Label))
		switch b.Kind {
		case thread.Agent:
			label = SuccessStyle.Render(util.EscapeTerminal(b.Label))
		case thread.Flagged:
			label = WarningStyle.Render(util.EscapeTerminal(b.Label))
		}
		sb.WriteString("\n" + label)
		if b.Time != "" {
			sb.WriteString("  " + DimStyle.Render(b.Time))
		}
		for _, line := range strings.Split(util.EscapeTerminal(b.Text), "\n") {
			sb.WriteString("\n    " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func printCleared(env *Env, args Args, command, text string) error {
	if args.JSON {
		return NewJSONResponse(command, ClearData{Cleared: command}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, SuccessStyle.Render(text))
	return nil
}
