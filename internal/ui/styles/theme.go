// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/careerdesk-tui/internal/gauge"
)

// Theme modes accepted by NewThemeFor (config key ui.theme).
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style
	Card      lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HealthUp       lipgloss.Style
	HealthDown     lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldBox          lipgloss.Style
	FieldBoxFocused   lipgloss.Style
	Button            lipgloss.Style
	ButtonBusy        lipgloss.Style

	// ==========================================================================
	// STAGE STYLES
	// ==========================================================================

	StagePending lipgloss.Style
	StageActive  lipgloss.Style
	StageDone    lipgloss.Style

	// ==========================================================================
	// VERDICT STYLES
	// ==========================================================================

	ApprovedTitle lipgloss.Style
	FlaggedTitle  lipgloss.Style
	ErrorTitle    lipgloss.Style
	Subtitle      lipgloss.Style
	ResponseText  lipgloss.Style
	Badge         lipgloss.Style
	BadgeSuccess  lipgloss.Style
	BadgeDanger   lipgloss.Style
	BadgeWarning  lipgloss.Style
	Detail        lipgloss.Style

	// ==========================================================================
	// GAUGE AND SCORE STYLES
	// ==========================================================================

	BandPositive lipgloss.Style
	BandWarning  lipgloss.Style
	BandDanger   lipgloss.Style
	BarSuccess   lipgloss.Style
	BarNeutral   lipgloss.Style
	BarDanger    lipgloss.Style
	BarTrack     lipgloss.Style
	BarLabel     lipgloss.Style

	// ==========================================================================
	// THREAD STYLES
	// ==========================================================================

	EmployerBubble lipgloss.Style
	AgentBubble    lipgloss.Style
	FlaggedBubble  lipgloss.Style
	BubbleLabel    lipgloss.Style
	BubbleTime     lipgloss.Style

	// ==========================================================================
	// PANEL STYLES
	// ==========================================================================

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	PanelEmpty lipgloss.Style
	PanelEmail lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Muted        lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme that follows the terminal background.
func NewTheme() *Theme {
	return NewThemeFor(ModeAuto)
}

// NewThemeFor creates a theme for a mode ("auto", "dark" or "light").
// Unknown modes behave like "auto".
func NewThemeFor(mode string) *Theme {
	colorProfile := lipgloss.ColorProfile()
	isDark := lipgloss.HasDarkBackground()

	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// DisableColor switches the default renderer to plain ASCII output.
// Used for --no-color and NO_COLOR.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// NoColorRequested reports whether the environment asks for plain output.
func NoColorRequested() bool {
	return termenv.EnvNoColor()
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HealthUp = lipgloss.NewStyle().Foreground(Emerald)
	t.HealthDown = lipgloss.NewStyle().Foreground(Rose)

	// Form
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldLabelFocused = lipgloss.NewStyle().
		Foreground(FocusRing).
		Bold(true)

	t.FieldBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		PaddingLeft(1)

	t.FieldBoxFocused = t.FieldBox.
		BorderForeground(FocusRing)

	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2)

	t.ButtonBusy = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	// Stages
	t.StagePending = lipgloss.NewStyle().Foreground(TextMuted)
	t.StageActive = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.StageDone = lipgloss.NewStyle().Foreground(Emerald)

	// Verdict
	t.ApprovedTitle = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.FlaggedTitle = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.ErrorTitle = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.Subtitle = lipgloss.NewStyle().Foreground(TextSecondary)
	t.ResponseText = lipgloss.NewStyle().Foreground(TextPrimary)

	t.Badge = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.BadgeSuccess = t.Badge.Foreground(Emerald).BorderForeground(Emerald)
	t.BadgeDanger = t.Badge.Foreground(Rose).BorderForeground(Rose)
	t.BadgeWarning = t.Badge.Foreground(Amber).BorderForeground(Amber)
	t.Detail = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Gauge and score bars
	t.BandPositive = lipgloss.NewStyle().Foreground(Emerald)
	t.BandWarning = lipgloss.NewStyle().Foreground(Amber)
	t.BandDanger = lipgloss.NewStyle().Foreground(Rose)
	t.BarSuccess = lipgloss.NewStyle().Foreground(Emerald)
	t.BarNeutral = lipgloss.NewStyle().Foreground(Slate)
	t.BarDanger = lipgloss.NewStyle().Foreground(Rose)
	t.BarTrack = lipgloss.NewStyle().Foreground(Overlay)
	t.BarLabel = lipgloss.NewStyle().Foreground(TextSecondary).Width(14)

	// Thread
	t.EmployerBubble = lipgloss.NewStyle().
		Foreground(EmployerBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(EmployerBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.AgentBubble = lipgloss.NewStyle().
		Foreground(AgentBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AgentBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.FlaggedBubble = lipgloss.NewStyle().
		Foreground(FlaggedBubbleFg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(FlaggedBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.BubbleLabel = lipgloss.NewStyle().Bold(true)
	t.BubbleTime = lipgloss.NewStyle().Foreground(TextMuted)

	// Panels
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.PanelEmpty = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.PanelEmail = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	// Accessibility
	t.SuccessStyle = lipgloss.NewStyle().Foreground(SuccessHighContrast).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(InfoHighContrast).Bold(true)
}

// GaugeBand returns the style for a confidence band.
func (t *Theme) GaugeBand(b gauge.Band) lipgloss.Style {
	switch b {
	case gauge.BandPositive:
		return t.BandPositive
	case gauge.BandWarning:
		return t.BandWarning
	case gauge.BandDanger:
		return t.BandDanger
	default:
		return t.Muted
	}
}

// ScoreBand returns the style for a score bar band.
func (t *Theme) ScoreBand(b gauge.ScoreBand) lipgloss.Style {
	switch b {
	case gauge.ScoreSuccess:
		return t.BarSuccess
	case gauge.ScoreNeutral:
		return t.BarNeutral
	case gauge.ScoreDanger:
		return t.BarDanger
	default:
		return t.BarTrack
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
