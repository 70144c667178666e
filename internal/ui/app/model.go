// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the submission screen: the form, the submit gate, the
// stage animation and the verdict, plus the history and log panels.
//
// All state changes happen in Update. Timers and HTTP calls run as tea
// commands and report back as messages stamped with the submission's
// generation; verdict.Reduce drops those that no longer apply.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/config"
	"github.com/jeranaias/careerdesk-tui/internal/panels"
	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/ui/components"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// Client is the slice of the API client the screen needs.
type Client interface {
	panels.Source
	SubmitMessage(ctx context.Context, sub api.Submission) (*api.ResponsePayload, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// healthTimeout bounds the startup health probe.
const healthTimeout = 5 * time.Second

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Model.
type Options struct {
	Client Client
	Config *config.Config
	Theme  *styles.Theme
	Logger *zap.Logger
	// Context bounds every request; cancel it on shutdown.
	Context context.Context
	// BaseURL is shown in the header.
	BaseURL string
	// Location is used for timestamps (default time.Local).
	Location *time.Location
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	client Client
	ctx    context.Context
	logger *zap.Logger
	theme  *styles.Theme
	keys   KeyMap

	// Settings, refreshed on config reload.
	timeline     stages.Timeline
	gaugeDelay   time.Duration
	barDelay     time.Duration
	threadHeight int
	exportDir    string
	agentName    string

	reducer verdict.Reducer
	state   verdict.State

	// busy is the submit gate. It closes when a request starts and opens
	// when that request resolves, however it resolves.
	busy bool

	form      Form
	spinner   components.Spinner
	card      *components.VerdictCard
	header    *components.Header
	statusBar *components.StatusBar
	thread    viewport.Model
	panels    panels.Model
	toasts    components.Toasts

	width  int
	height int
}

// New creates the screen.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	keys := DefaultKeyMap()
	m := Model{
		client:  opts.Client,
		ctx:     opts.Context,
		logger:  opts.Logger,
		theme:   opts.Theme,
		keys:    keys,
		state:   verdict.Initial(),
		form:    NewForm(),
		spinner: components.NewSpinner(),
		card:    components.NewVerdictCard(opts.Theme),
		header:  components.NewHeader(opts.Theme),
		panels: panels.New(opts.Client, panels.Options{
			Context:       opts.Context,
			SnippetLength: opts.Config.UI.SnippetLength,
			Location:      opts.Location,
			Logger:        opts.Logger,
		}),
		thread:   viewport.New(80, config.Default().UI.ThreadHeight),
		timeline: stages.DefaultTimeline(),
		reducer:  verdict.Reducer{Location: opts.Location},
		width:    80,
		height:   24,
	}
	m.card.IncludeThread = false
	m.header.BaseURL = opts.BaseURL
	m.statusBar = components.NewStatusBar(opts.Theme, keys)
	m.applyConfig(opts.Config)
	return m
}

// Init starts the log count fetch, the health probe and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.panels.FetchLogs(),
		m.checkHealth(),
		textinput.Blink,
	)
}

// =============================================================================
// GETTERS
// =============================================================================

// State returns the current verdict state.
func (m Model) State() verdict.State {
	return m.state
}

// Busy reports whether a request is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Form returns the submission form.
func (m Model) Form() Form {
	return m.form
}

// Panels returns the history and log panels.
func (m Model) Panels() panels.Model {
	return m.panels
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// applyConfig takes the animation and presentation settings from cfg. They
// apply from the next submission on; the request timeout and base URL are
// fixed for the client's lifetime.
func (m *Model) applyConfig(cfg *config.Config) {
	tl, err := stages.NewTimeline(cfg.Animation.ActivateOffsets(), cfg.Animation.CompleteOffsets())
	if err != nil {
		m.logger.Warn("invalid stage timeline, keeping current", zap.Error(err))
	} else {
		m.timeline = tl
	}
	m.gaugeDelay = cfg.Animation.GaugeDelay()
	m.barDelay = cfg.Animation.BarDelay()

	m.agentName = cfg.UI.AgentName
	m.reducer.AgentName = cfg.UI.AgentName
	m.header.AgentName = cfg.UI.AgentName
	m.panels = m.panels.SetSnippetLength(cfg.UI.SnippetLength)
	m.exportDir = cfg.UI.ExportDir
	if cfg.UI.ThreadHeight > 0 {
		m.threadHeight = cfg.UI.ThreadHeight
		m.thread.Height = cfg.UI.ThreadHeight
	}
}
