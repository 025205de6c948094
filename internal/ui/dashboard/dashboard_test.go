// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/session"
	"github.com/jeranaias/companion-tui/internal/ui/avatar"
	"github.com/jeranaias/companion-tui/internal/ui/components"
	"github.com/jeranaias/companion-tui/internal/ui/moodchart"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
	"github.com/jeranaias/companion-tui/internal/ui/transcript"
	"github.com/jeranaias/companion-tui/internal/voice"
)

// =============================================================================
// FAKE CONTROLLER
// =============================================================================

type fakeApp struct {
	mu sync.Mutex

	state   app.State
	profile *model.Profile

	restoreOK  bool
	restoreErr error
	loginErr   error

	logins    []app.LoginForm
	registers []app.RegisterForm
	sent      []string
	history   []bool
	names     []string
	loggedOut bool

	voiceResults chan voice.Result
	voiceErr     error
}

func (f *fakeApp) State() app.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeApp) Profile() *model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

func (f *fakeApp) Register(ctx context.Context, form app.RegisterForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, form)
	return nil
}

func (f *fakeApp) Login(ctx context.Context, form app.LoginForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, form)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.state = app.StateDashboard
	f.profile = &model.Profile{Email: form.Email, DisplayName: "Sam", HistoryEnabled: true}
	return nil
}

func (f *fakeApp) Restore(ctx context.Context) (bool, error) {
	return f.restoreOK, f.restoreErr
}

func (f *fakeApp) SendMessage(ctx context.Context, text string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return true, nil
}

func (f *fakeApp) ToggleHistory(ctx context.Context, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, enabled)
	f.profile.HistoryEnabled = enabled
	return nil
}

func (f *fakeApp) RefreshMood(ctx context.Context) error { return nil }

func (f *fakeApp) LogMood(ctx context.Context, mood model.Mood, day model.Date) error { return nil }

func (f *fakeApp) UndoMood(ctx context.Context) error { return nil }

func (f *fakeApp) SetDisplayName(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return nil
}

func (f *fakeApp) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = true
	f.state = app.StateUnauthenticated
	f.profile = nil
}

func (f *fakeApp) ToggleVoice(ctx context.Context) (<-chan voice.Result, error) {
	if f.voiceErr != nil {
		return nil, f.voiceErr
	}
	return f.voiceResults, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel(t *testing.T, fa *fakeApp) Model {
	t.Helper()
	theme := styles.NewTheme("dark")
	m := New(Options{
		App: fa,
		Views: Views{
			Transcript: transcript.New(theme, transcript.Options{}),
			Avatar:     avatar.New(),
			Chart:      moodchart.New(""),
		},
		Theme:     theme,
		VoiceHint: true,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return update(t, m, restoredMsg{ok: fa.restoreOK})
}

func signedIn(t *testing.T) (*fakeApp, Model) {
	t.Helper()
	fa := &fakeApp{
		state:     app.StateDashboard,
		profile:   &model.Profile{Email: "sam@example.com", DisplayName: "Sam", HistoryEnabled: true},
		restoreOK: true,
	}
	return fa, newTestModel(t, fa)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// finish runs cmd and feeds its message back into the model.
func finish(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	next, out := m.Update(cmd())
	res, ok := next.(Model)
	require.True(t, ok)
	return res, out
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

// =============================================================================
// RESTORE
// =============================================================================

func TestRestore_FailureUsesStatusLine(t *testing.T) {
	theme := styles.NewTheme("dark")
	fa := &fakeApp{restoreErr: session.ErrExpired}
	m := New(Options{App: fa, Theme: theme, Views: Views{
		Transcript: transcript.New(theme, transcript.Options{}),
		Avatar:     avatar.New(),
		Chart:      moodchart.New(""),
	}})
	assert.True(t, m.Busy())

	m = update(t, m, m.restore()())

	assert.False(t, m.Busy())
	assert.False(t, m.Alert().Visible())
	assert.Equal(t, components.StatusError, m.Status().Status)
	assert.Contains(t, m.Status().Note, "expired")
}

// =============================================================================
// AUTH VIEW
// =============================================================================

func TestLogin(t *testing.T) {
	fa := &fakeApp{}
	m := newTestModel(t, fa)
	m.form.fields[fieldEmail].SetValue("sam@example.com")
	m.form.fields[fieldPassword].SetValue("correct horse")

	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	_, again := press(t, m, enter)
	assert.Nil(t, again, "submissions are ignored while busy")

	m, _ = finish(t, m, cmd)
	assert.False(t, m.Busy())
	assert.Equal(t, []app.LoginForm{{Email: "sam@example.com", Password: "correct horse"}}, fa.logins)
	assert.Empty(t, m.form.fields[fieldEmail].Value())
	assert.Empty(t, m.form.fields[fieldPassword].Value())
	assert.Contains(t, m.Status().Note, "Sam")
	assert.Contains(t, m.View(), "Mood")
}

func TestLogin_FailureShowsAlert(t *testing.T) {
	fa := &fakeApp{loginErr: &api.Error{Status: 401, Message: "Incorrect email or password"}}
	m := newTestModel(t, fa)
	m.form.fields[fieldEmail].SetValue("sam@example.com")
	m.form.fields[fieldPassword].SetValue("wrong")

	m, cmd := press(t, m, enter)
	m, _ = finish(t, m, cmd)

	require.True(t, m.Alert().Visible())
	assert.Equal(t, "Incorrect email or password", m.Alert().Message())
	assert.Contains(t, m.View(), "Incorrect email or password")
	assert.Equal(t, "sam@example.com", m.form.fields[fieldEmail].Value())
	assert.Empty(t, m.form.fields[fieldPassword].Value())

	m, _ = press(t, m, enter)
	assert.False(t, m.Alert().Visible())
	assert.Len(t, fa.logins, 1, "dismissing the alert must not resubmit")
}

func TestLogin_RequiresFields(t *testing.T) {
	m := newTestModel(t, &fakeApp{})

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.True(t, m.Alert().Visible())
}

func TestRegister_ShowsConfirmation(t *testing.T) {
	fa := &fakeApp{}
	m := newTestModel(t, fa)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, formRegister, m.form.mode)
	assert.Contains(t, m.View(), "Create account")

	m.form.fields[fieldEmail].SetValue("new@example.com")
	m.form.fields[fieldPassword].SetValue("pw123456")
	m.form.fields[fieldDisplayName].SetValue("New")

	m, cmd := press(t, m, enter)
	m, _ = finish(t, m, cmd)

	assert.Equal(t, []app.RegisterForm{{Email: "new@example.com", Password: "pw123456", DisplayName: "New"}}, fa.registers)
	require.True(t, m.Alert().Visible())
	assert.Equal(t, app.RegisteredMessage, m.Alert().Message())
	assert.Equal(t, formLogin, m.form.mode)
	for i := range m.form.fields {
		assert.Empty(t, m.form.fields[i].Value())
	}
	assert.Equal(t, app.StateUnauthenticated, fa.State())
}

func TestAuthForm_FocusCycles(t *testing.T) {
	m := newTestModel(t, &fakeApp{})
	assert.Equal(t, fieldEmail, m.form.focus)

	m, _ = press(t, m, tab)
	assert.Equal(t, fieldPassword, m.form.focus)
	m, _ = press(t, m, tab)
	assert.Equal(t, fieldEmail, m.form.focus, "login form has two fields")
}

// =============================================================================
// DASHBOARD
// =============================================================================

func TestSendMessage(t *testing.T) {
	fa, m := signedIn(t)
	m.input.SetValue("Hello")

	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	m.input.SetValue("Hello again")
	m, again := press(t, m, enter)
	assert.Nil(t, again)
	assert.Contains(t, m.Status().Note, "wait")

	m, _ = finish(t, m, cmd)
	assert.Equal(t, []string{"Hello"}, fa.sent)
	assert.Empty(t, m.Input())
	assert.False(t, m.Busy())
}

func TestSendMessage_WhitespaceIgnored(t *testing.T) {
	fa, m := signedIn(t)
	m.input.SetValue("   ")

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.Empty(t, fa.sent)
}

func TestSlashCommand(t *testing.T) {
	fa, m := signedIn(t)
	m.input.SetValue("/history off")

	m, cmd := press(t, m, enter)
	m, _ = finish(t, m, cmd)

	assert.Equal(t, []bool{false}, fa.history)
	assert.Empty(t, m.Input())
	assert.Equal(t, "History disabled. Past messages are hidden.", m.Status().Note)
	assert.Empty(t, fa.sent, "commands are not sent as chat")
}

func TestSlashCommand_ErrorKeepsInput(t *testing.T) {
	_, m := signedIn(t)
	m.input.SetValue("/dance")

	m, cmd := press(t, m, enter)
	m, _ = finish(t, m, cmd)

	require.True(t, m.Alert().Visible())
	assert.Contains(t, m.Alert().Message(), "unknown command")
	assert.Equal(t, "/dance", m.Input())
}

func TestSlashCommand_Quit(t *testing.T) {
	_, m := signedIn(t)
	m.input.SetValue("/quit")

	m, cmd := press(t, m, enter)
	_, quit := finish(t, m, cmd)
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestToggleHistoryKey(t *testing.T) {
	fa, m := signedIn(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = finish(t, m, cmd)

	assert.Equal(t, []bool{false}, fa.history)
	assert.Contains(t, m.View(), "History: off")
}

func TestLogoutKey(t *testing.T) {
	fa, m := signedIn(t)
	m.input.SetValue("half typed")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.True(t, fa.loggedOut)
	assert.Empty(t, m.Input())
	assert.Equal(t, "Signed out", m.Status().Note)
	assert.Contains(t, m.View(), "Sign in")
}

func TestTabCompletesCommands(t *testing.T) {
	_, m := signedIn(t)
	m.input.SetValue("/hi")

	m, _ = press(t, m, tab)
	assert.Equal(t, "/history ", m.Input())
}

// =============================================================================
// VOICE
// =============================================================================

func TestVoice_FillsInput(t *testing.T) {
	fa, m := signedIn(t)
	fa.voiceResults = make(chan voice.Result, 1)
	fa.voiceResults <- voice.Result{Transcript: "hello there"}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, components.StatusListening, m.Status().Status)
	assert.Contains(t, m.View(), "Listening")

	m, _ = finish(t, m, cmd)
	assert.Equal(t, "hello there", m.Input())
	assert.Equal(t, components.StatusReady, m.Status().Status)
}

func TestVoice_ResultAfterLogoutIgnored(t *testing.T) {
	fa, m := signedIn(t)
	fa.voiceResults = make(chan voice.Result, 1)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, fa.loggedOut)

	fa.voiceResults <- voice.Result{Transcript: "too late"}
	m, _ = finish(t, m, cmd)

	assert.Empty(t, m.Input())
	assert.Equal(t, "Signed out", m.Status().Note)
	assert.False(t, m.Alert().Visible())
}

func TestActionDone_SignedOutIsQuiet(t *testing.T) {
	_, m := signedIn(t)

	m = update(t, m, actionDoneMsg{action: actionSend, err: app.ErrSignedOut})

	assert.False(t, m.Alert().Visible())
}

func TestVoice_Unsupported(t *testing.T) {
	fa, m := signedIn(t)
	fa.voiceErr = voice.ErrUnsupported

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd)
	require.True(t, m.Alert().Visible())
	assert.Equal(t, voice.ErrUnsupported.Error(), m.Alert().Message())
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigChanged(t *testing.T) {
	_, m := signedIn(t)
	reply := model.NewAssistantMessage("Hi", "en", "neutral", time.Now())
	m.views.Transcript.Append(reply)

	cfg := config.Default()
	cfg.UI.AssistantName = "Juniper"
	m = update(t, m, ConfigChangedMsg{Config: cfg})

	assert.True(t, strings.HasPrefix(m.views.Transcript.MetaLine(reply), "Juniper"))
	assert.Equal(t, "Configuration reloaded", m.Status().Note)
}
