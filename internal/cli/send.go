// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// send.go - Submit one message and print the verdict.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/export"
	"github.com/jeranaias/careerdesk-tui/internal/ui/components"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

const sendExample = `careerdesk send --name "Ada Lovelace" --email ada@acme.io --subject "Role" --message "Are you open to a chat?"`

// HandleSend handles the "send" command.
func HandleSend(ctx context.Context, env *Env, args Args) error {
	sub, err := gatherSubmission(env, args)
	if err != nil {
		return err
	}

	if err := sub.Validate(); err != nil {
		var subErr *api.SubmissionError
		if errors.As(err, &subErr) {
			return &ValidationError{Fields: subErr.Missing, Example: sendExample}
		}
		return err
	}

	cfg := env.config()
	reducer := verdict.Reducer{AgentName: cfg.UI.AgentName, Location: env.location()}
	state, submitErr := submitAndResolve(ctx, env, reducer, sub)

	htmlPath := ""
	if args.HTMLPath != "" {
		htmlPath, err = writeHTML(env, state, args.HTMLPath)
		if err != nil {
			return NewCommandError("send", "export", "could not write HTML", err)
		}
		env.logger().Info("verdict exported", zap.String("path", htmlPath))
	}

	if args.JSON {
		doc, err := export.NewDocument(state, env.now())
		if err != nil {
			return err
		}
		data := SendData{Verdict: doc, HTMLPath: htmlPath}
		if submitErr != nil {
			if perr := NewJSONErrorResponse("send", submitErr, data).Print(env.Out); perr != nil {
				return perr
			}
			return &reportedError{err: submitErr}
		}
		return NewJSONResponse("send", data).Print(env.Out)
	}

	fmt.Fprintln(env.Out, RenderVerdict(state, cfg.UI.Theme, GetTerminalWidth()))
	if htmlPath != "" {
		fmt.Fprintf(env.Out, "\n%s %s\n", DimStyle.Render("Exported to"), htmlPath)
	}
	if submitErr != nil {
		return &reportedError{err: submitErr}
	}
	return nil
}

// gatherSubmission builds the submission from flags, the message file and,
// on a terminal, prompts for whatever is still missing.
func gatherSubmission(env *Env, args Args) (api.Submission, error) {
	sub := api.Submission{
		SenderName:  args.Name,
		SenderEmail: args.Email,
		Subject:     args.Subject,
		Message:     args.Message,
	}

	if args.MessageFile != "" {
		msg, err := readMessage(args.MessageFile, env.In)
		if err != nil {
			return sub, err
		}
		sub.Message = msg
	}

	if sub.Validate() == nil || args.JSON {
		return sub, nil
	}

	prompter := env.Prompter
	if prompter == nil {
		if !CanPrompt() || args.MessageFile == "-" {
			return sub, nil
		}
		lp := NewLinePrompter()
		defer lp.Close()
		prompter = lp
	}
	return promptMissing(prompter, sub)
}

// submitAndResolve runs one submission through the reducer the same way the
// interactive client does, with the visuals engaged. The returned error is
// the request failure, if any.
func submitAndResolve(ctx context.Context, env *Env, r verdict.Reducer, sub api.Submission) (verdict.State, error) {
	log := env.logger()
	s := r.Reduce(verdict.Initial(), verdict.Submitted{Submission: sub})

	start := time.Now()
	payload, err := env.Client.SubmitMessage(ctx, s.Submission)
	if err != nil {
		log.Warn("submission failed",
			zap.String("sender_email", s.Submission.SenderEmail),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		s = r.Reduce(s, verdict.Failed{Gen: s.Gen, Err: err})
		return s, err
	}

	s = r.Reduce(s, verdict.Resolved{Gen: s.Gen, Payload: payload})
	s = r.Reduce(s, verdict.GaugeEngaged{Gen: s.Gen})
	s = r.Reduce(s, verdict.BarsEngaged{Gen: s.Gen})
	log.Info("submission resolved",
		zap.String("sender_email", s.Submission.SenderEmail),
		zap.String("phase", s.Phase.String()),
		zap.Duration("duration", time.Since(start)),
	)
	return s, nil
}

// writeHTML exports s to path. A directory gets a generated file name.
func writeHTML(env *Env, s verdict.State, path string) (string, error) {
	cfg := env.config()
	opts := &export.Options{
		OutputDir:     path,
		AgentName:     cfg.UI.AgentName,
		IncludeThread: true,
		Theme:         styles.ModeDark,
		Now:           env.Now,
	}
	if strings.EqualFold(cfg.UI.Theme, styles.ModeLight) {
		opts.Theme = styles.ModeLight
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return export.ExportHTML(s, opts)
	}

	content, err := export.NewHTMLExporter(opts).Export(s)
	if err != nil {
		return "", err
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// RenderVerdict projects a resolved state as CLI text: the submission
// header followed by the same card the interactive client draws.
func RenderVerdict(s verdict.State, themeMode string, width int) string {
	theme := styles.NewThemeFor(themeMode)
	card := components.NewVerdictCard(theme)
	card.SetWidth(width)

	var sb strings.Builder
	sub := s.Submission
	sb.WriteString(RenderLabel("From") + ValueStyle.Render(util.EscapeTerminal(sub.SenderName)+" <"+util.EscapeTerminal(sub.SenderEmail)+">"))
	sb.WriteString("\n")
	sb.WriteString(RenderLabel("Subject") + ValueStyle.Render(util.EscapeTerminal(sub.Subject)))
	sb.WriteString("\n")
	sb.WriteString(RenderSeparator(width))
	sb.WriteString("\n\n")
	sb.WriteString(card.View(s))
	return sb.String()
}
