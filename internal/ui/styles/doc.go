// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the careerdesk TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The ui.theme config key can pin the background to dark or light.

# Color System (colors.go)

  - Emerald - Approved verdicts, positive gauge band, scores of 8 and above
  - Amber - Flagged verdicts, ambiguous or out-of-domain confidence
  - Rose - Errors, danger band, scores below 6
  - Slate - Scores from 6 up to 8
  - Purple / Cyan - Focus ring, agent replies, key hints

Every status color is paired with an ASCII indicator ([OK], [X], [!], [*])
so meaning never depends on color alone.

# Theme (theme.go)

Theme groups the lipgloss styles for the header, form, stage list, verdict
card, gauge and score bars, thread bubbles, panels and status bar.
GaugeBand and ScoreBand map the gauge package's bands onto styles.

# Animations (animations.go)

SpinnerConfig values convert to bubbles spinners. RenderProgressBar draws
score bars; RenderMeter draws the confidence meter with its needle.
*/
package styles
