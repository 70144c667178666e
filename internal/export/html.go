// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
	"github.com/jeranaias/careerdesk-tui/internal/util"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports a verdict as a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a verdict to HTML. The gauge and bars are drawn at their
// final positions regardless of animation state.
func (e *HTMLExporter) Export(s verdict.State) ([]byte, error) {
	if !s.Phase.Terminal() {
		return nil, ErrNotTerminal
	}

	title, subtitle := s.Headline()
	esc := util.EscapeMarkup

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s - %s</title>\n", esc(title), esc(s.Submission.Subject)))
	sb.WriteString("    <meta name=\"generator\" content=\"careerdesk\">\n")
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.theme()))
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString(e.renderSubmission(s))

	sb.WriteString(fmt.Sprintf("        <section class=\"verdict %s\">\n", phaseSlug(s.Phase)))
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", esc(title)))
	if subtitle != "" {
		sb.WriteString(fmt.Sprintf("            <p class=\"subtitle\">%s</p>\n", esc(subtitle)))
	}
	switch {
	case s.Approved != nil:
		sb.WriteString(e.renderApproved(s.Approved))
	case s.Flagged != nil:
		sb.WriteString(e.renderFlagged(s.Flagged))
	case s.Failure != nil:
		sb.WriteString(fmt.Sprintf("            <p class=\"response\">%s</p>\n", esc(s.Failure.Body)))
	}
	sb.WriteString("        </section>\n")

	if s.ShowGauge {
		sb.WriteString(e.renderGauge(s.Gauge))
	}
	if s.ShowScores {
		sb.WriteString(e.renderScores(s.Scores))
	}
	if e.options.IncludeThread && s.ShowThread() {
		sb.WriteString(e.renderThread(s.Thread))
	}

	sb.WriteString("        <footer class=\"footer\">\n")
	agent := ""
	if e.options.AgentName != "" {
		agent = " for " + esc(e.options.AgentName)
	}
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>careerdesk</strong>%s on %s</p>\n",
		agent, e.options.now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

func (e *HTMLExporter) theme() string {
	if e.options.Theme == "light" {
		return "light"
	}
	return "dark"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderSubmission(s verdict.State) string {
	esc := util.EscapeMarkup
	sub := s.Submission

	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h2>%s</h2>\n", esc(sub.Subject)))
	sb.WriteString("            <div class=\"metadata\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>From:</strong> %s &lt;%s&gt;</span>\n",
		esc(sub.SenderName), esc(sub.SenderEmail)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Exported:</strong> %s</span>\n",
		formatTimestamp(e.options.now())))
	sb.WriteString("            </div>\n")
	sb.WriteString(fmt.Sprintf("            <blockquote class=\"message\">%s</blockquote>\n", esc(sub.Message)))
	sb.WriteString("        </header>\n")
	return sb.String()
}

func (e *HTMLExporter) renderApproved(a *verdict.Approved) string {
	esc := util.EscapeMarkup

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("            <p class=\"response\">%s</p>\n", esc(a.ResponseText)))
	sb.WriteString("            <div class=\"badges\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"badge\">%s</span>\n", esc(a.RevisionBadge)))
	if a.Email != nil {
		class := "badge success"
		if !a.Email.Sent {
			class = "badge danger"
		}
		sb.WriteString(fmt.Sprintf("                <span class=\"%s\">%s</span>\n", class, esc(a.Email.Text)))
	}
	sb.WriteString("            </div>\n")
	if a.Email != nil && a.Email.Detail != "" {
		sb.WriteString(fmt.Sprintf("            <p class=\"detail\">%s</p>\n", esc(a.Email.Detail)))
	}
	return sb.String()
}

func (e *HTMLExporter) renderFlagged(f *verdict.Flagged) string {
	esc := util.EscapeMarkup

	var sb strings.Builder
	if f.Reason != "" {
		sb.WriteString(fmt.Sprintf("            <p class=\"response\"><strong>Reason:</strong> %s</p>\n", esc(f.Reason)))
	}
	sb.WriteString(fmt.Sprintf("            <span class=\"badge warning\">Category: %s</span>\n", esc(f.Category)))
	return sb.String()
}

// renderGauge draws the semicircular dial. The track is an r=80 half circle
// whose length is gauge.ArcLength; the fill uses stroke-dasharray and the
// needle rotates about the hub.
func (e *HTMLExporter) renderGauge(g gauge.Gauge) string {
	esc := util.EscapeMarkup

	var sb strings.Builder
	sb.WriteString("        <section class=\"gauge\">\n")
	sb.WriteString("            <h3>Confidence</h3>\n")
	sb.WriteString("            <svg viewBox=\"0 0 200 120\" width=\"240\" height=\"144\" role=\"img\">\n")
	sb.WriteString("                <path class=\"gauge-track\" d=\"M 20 100 A 80 80 0 0 1 180 100\" fill=\"none\" stroke-width=\"14\"/>\n")
	sb.WriteString(fmt.Sprintf("                <path class=\"gauge-fill %s\" d=\"M 20 100 A 80 80 0 0 1 180 100\" fill=\"none\" stroke-width=\"14\" stroke-dasharray=\"%s\"/>\n",
		g.Band.String(), g.DashArray()))
	sb.WriteString(fmt.Sprintf("                <line class=\"gauge-needle\" x1=\"100\" y1=\"100\" x2=\"100\" y2=\"30\" stroke-width=\"3\" transform=\"rotate(%s 100 100)\"/>\n",
		formatAngle(g.Needle)))
	sb.WriteString("                <circle class=\"gauge-hub\" cx=\"100\" cy=\"100\" r=\"6\"/>\n")
	sb.WriteString("            </svg>\n")
	sb.WriteString(fmt.Sprintf("            <p class=\"gauge-percent\">%s</p>\n", esc(g.PercentText())))
	sb.WriteString(fmt.Sprintf("            <p class=\"gauge-label\">%s</p>\n", esc(g.Label)))
	sb.WriteString(fmt.Sprintf("            <p class=\"gauge-category\">category: %s</p>\n", esc(g.Category)))
	sb.WriteString("        </section>\n")
	return sb.String()
}

func (e *HTMLExporter) renderScores(sc gauge.Scorecard) string {
	esc := util.EscapeMarkup

	var sb strings.Builder
	sb.WriteString("        <section class=\"scores\">\n")
	sb.WriteString("            <h3>Critic Evaluation</h3>\n")
	for _, b := range sc.Bars {
		sb.WriteString("            <div class=\"score-row\">\n")
		sb.WriteString(fmt.Sprintf("                <span class=\"score-name\">%s</span>\n", esc(b.Name)))
		sb.WriteString(fmt.Sprintf("                <div class=\"score-track\"><div class=\"score-fill %s\" style=\"width: %s%%\"></div></div>\n",
			b.Band.String(), util.FormatScore(b.Width)))
		sb.WriteString(fmt.Sprintf("                <span class=\"score-label\">%s</span>\n", esc(b.Label)))
		sb.WriteString("            </div>\n")
	}
	sb.WriteString(fmt.Sprintf("            <p class=\"overall\"><strong>Overall:</strong> %s</p>\n", esc(sc.Overall)))
	if sc.Feedback != "" {
		sb.WriteString(fmt.Sprintf("            <p class=\"feedback\">%s</p>\n", esc(sc.Feedback)))
	}
	sb.WriteString("        </section>\n")
	return sb.String()
}

func (e *HTMLExporter) renderThread(bubbles []thread.Bubble) string {
	esc := util.EscapeMarkup

	var sb strings.Builder
	sb.WriteString("        <main class=\"conversation\">\n")
	sb.WriteString("            <h3>Conversation History</h3>\n")
	for _, b := range bubbles {
		sb.WriteString(fmt.Sprintf("            <div class=\"message %s-message\">\n", b.Kind.String()))
		sb.WriteString("                <div class=\"message-header\">\n")
		sb.WriteString(fmt.Sprintf("                    <span class=\"role-label\">%s</span>\n", esc(b.Label)))
		if b.Time != "" {
			sb.WriteString(fmt.Sprintf("                    <span class=\"timestamp\">%s</span>\n", esc(b.Time)))
		}
		sb.WriteString("                </div>\n")
		sb.WriteString(fmt.Sprintf("                <div class=\"message-content\">%s</div>\n",
			strings.ReplaceAll(esc(b.Text), "\n", "<br>\n")))
		sb.WriteString("            </div>\n")
	}
	sb.WriteString("        </main>\n")
	return sb.String()
}

func formatAngle(deg float64) string {
	s := fmt.Sprintf("%.2f", deg)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// =============================================================================
// STYLES
// =============================================================================

func (e *HTMLExporter) getCSS() string {
	return `    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
        }

        /* Dark theme (default) */
        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-secondary: #a9b1d6;
            --text-muted: #565f89;
            --border-color: #414868;
            --accent-purple: #bb9af7;
            --success: #10b981;
            --warning: #f59e0b;
            --danger: #f43f5e;
            --neutral: #64748b;
        }

        /* Light theme */
        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-secondary: #586069;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --accent-purple: #6f42c1;
            --success: #059669;
            --warning: #d97706;
            --danger: #e11d48;
            --neutral: #475569;
        }

        body {
            font-family: var(--font-sans);
            font-size: 16px;
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 900px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            overflow: hidden;
        }

        .header, .verdict, .gauge, .scores, .conversation {
            padding: 24px 32px;
            border-bottom: 1px solid var(--border-color);
        }

        .header { background: var(--bg-tertiary); }
        .metadata { display: flex; flex-wrap: wrap; gap: 16px; color: var(--text-secondary); }
        .message { white-space: pre-wrap; margin-top: 12px; color: var(--text-secondary); }

        .verdict.approved h1 { color: var(--success); }
        .verdict.flagged h1 { color: var(--warning); }
        .verdict.error h1 { color: var(--danger); }
        .subtitle { color: var(--text-muted); margin-bottom: 12px; }
        .response { white-space: pre-wrap; margin-bottom: 12px; }
        .detail { color: var(--text-muted); font-size: 14px; }

        .badges { display: flex; gap: 8px; }
        .badge {
            display: inline-block;
            padding: 2px 10px;
            border-radius: 999px;
            border: 1px solid var(--accent-purple);
            font-size: 13px;
        }
        .badge.success { border-color: var(--success); color: var(--success); }
        .badge.danger { border-color: var(--danger); color: var(--danger); }
        .badge.warning { border-color: var(--warning); color: var(--warning); }

        .gauge-track { stroke: var(--bg-tertiary); }
        .gauge-fill { stroke: var(--neutral); stroke-linecap: round; }
        .gauge-fill.positive { stroke: var(--success); }
        .gauge-fill.warning { stroke: var(--warning); }
        .gauge-fill.danger { stroke: var(--danger); }
        .gauge-needle { stroke: var(--text-primary); }
        .gauge-hub { fill: var(--text-primary); }
        .gauge-percent { font-size: 24px; font-weight: 700; }
        .gauge-category { color: var(--text-muted); }

        .score-row { display: flex; align-items: center; gap: 12px; margin: 6px 0; }
        .score-name { width: 120px; }
        .score-track { flex: 1; height: 10px; background: var(--bg-tertiary); border-radius: 5px; }
        .score-fill { height: 100%; border-radius: 5px; }
        .score-fill.success { background: var(--success); }
        .score-fill.neutral { background: var(--neutral); }
        .score-fill.danger { background: var(--danger); }
        .feedback { color: var(--text-secondary); margin-top: 8px; }

        .conversation .message { white-space: normal; }
        .message-header { display: flex; gap: 12px; font-size: 13px; color: var(--text-muted); }
        .role-label { font-weight: 600; }
        .employer-message { margin-right: 25%; }
        .agent-message, .flagged-message { margin-left: 25%; text-align: right; }
        .flagged-message .role-label { color: var(--warning); }
        .message-content {
            padding: 10px 14px;
            border-radius: 10px;
            background: var(--bg-primary);
            text-align: left;
        }

        .footer {
            padding: 16px 32px;
            color: var(--text-muted);
            font-size: 13px;
            text-align: center;
        }
    </style>
`
}
