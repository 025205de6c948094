// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/commands"
	"github.com/jeranaias/companion-tui/internal/ui/avatar"
	"github.com/jeranaias/companion-tui/internal/ui/components"
	"github.com/jeranaias/companion-tui/internal/ui/moodchart"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
	"github.com/jeranaias/companion-tui/internal/ui/transcript"
	"github.com/jeranaias/companion-tui/internal/voice"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// App is the controller the views drive. *app.Controller implements it.
type App interface {
	commands.Actions
	State() app.State
	Register(ctx context.Context, form app.RegisterForm) error
	Login(ctx context.Context, form app.LoginForm) error
	Restore(ctx context.Context) (bool, error)
	SendMessage(ctx context.Context, text string) (bool, error)
	ToggleVoice(ctx context.Context) (<-chan voice.Result, error)
}

// Views are the renderers the controller updates. The model only reads
// and lays them out.
type Views struct {
	Transcript *transcript.Renderer
	Avatar     *avatar.Avatar
	Chart      *moodchart.Renderer
}

// Options configures a Model.
type Options struct {
	App    App
	Views  Views
	Theme  *styles.Theme
	Logger *zap.Logger
	// Context bounds every controller call. Defaults to context.Background.
	Context context.Context
	// VoiceHint is shown on the dashboard when voice input is set up
	VoiceHint bool
}

// =============================================================================
// MODEL
// =============================================================================

const (
	sidebarWidth = 34
	inputHeight  = 3
)

// Model is the Bubble Tea model of the client: the auth view and the
// dashboard, with a blocking alert over either.
type Model struct {
	app    App
	views  Views
	theme  *styles.Theme
	keys   KeyMap
	logger *zap.Logger
	ctx    context.Context

	parser    *commands.Parser
	completer *commands.Completer

	header  *components.Header
	status  *components.StatusBar
	alert   components.Alert
	spinner spinner.Model

	form  authForm
	input textinput.Model

	// busy is set while a controller call runs off the render loop
	busy      bool
	listening bool
	voiceHint bool

	width  int
	height int
}

// New creates the model. It starts busy: Init restores the stored session.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Theme.Spinner

	input := textinput.New()
	input.Placeholder = "Say something, or /help"
	input.Prompt = "› "
	input.CharLimit = 4000

	registry := commands.NewRegistry()
	m := Model{
		app:       opts.App,
		views:     opts.Views,
		theme:     opts.Theme,
		keys:      DefaultKeyMap(),
		logger:    logger.Named("tui"),
		ctx:       ctx,
		parser:    commands.NewParser(registry),
		completer: commands.NewCompleter(registry),
		header:    components.NewHeader(opts.Theme),
		status:    components.NewStatusBar(opts.Theme),
		alert:     components.NewAlert(opts.Theme),
		spinner:   sp,
		form:      newAuthForm(),
		input:     input,
		busy:      true,
		voiceHint: opts.VoiceHint,
	}
	m.status.SetStatus(components.StatusBusy, "Restoring session")
	return m
}

// Init starts the cursor blink, the spinner and the session restore.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.restore())
}

// Busy reports whether a controller call is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Alert returns the alert modal.
func (m Model) Alert() components.Alert {
	return m.alert
}

// Input returns the chat input's text.
func (m Model) Input() string {
	return m.input.Value()
}

// Status returns the status bar.
func (m Model) Status() components.StatusBar {
	return *m.status
}

// resize lays out every component for a terminal of width x height.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.status.SetWidth(width)
	m.alert.SetSize(width, height)
	m.input.Width = width - 8

	for i := range m.form.fields {
		m.form.fields[i].Width = 36
	}

	transcriptWidth := width
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		transcriptWidth = width - sidebarWidth - 1
	}
	m.views.Transcript.SetSize(transcriptWidth, m.mainHeight())
}

// mainHeight is the room left between the header and the input.
func (m Model) mainHeight() int {
	h := m.height - lipgloss.Height(m.header.View()) - 1 - inputHeight
	if h < 3 {
		h = 3
	}
	return h
}

// syncChrome copies profile and mood into the header.
func (m *Model) syncChrome() {
	m.header.SetProfile(m.app.Profile())
	if _, ok := m.views.Avatar.Face(); ok && m.app.State() == app.StateDashboard {
		m.header.SetMood(m.views.Avatar.Mood())
	} else {
		m.header.SetMood("")
	}
}
