// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/commands"
	"github.com/jeranaias/companion-tui/internal/session"
	"github.com/jeranaias/companion-tui/internal/ui/components"
	"github.com/jeranaias/companion-tui/internal/ui/transcript"
	"github.com/jeranaias/companion-tui/internal/voice"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and returns the next model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.alert.Visible() {
			var cmd tea.Cmd
			m.alert, cmd = m.alert.Update(msg)
			return m, cmd
		}
		if m.app.State() == app.StateDashboard {
			return m.updateDashboard(msg)
		}
		return m.updateAuth(msg)

	case tea.MouseMsg:
		if m.app.State() == app.StateDashboard {
			return m, m.views.Transcript.Update(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.status.Spinner = m.spinner.View()
		return m, cmd

	case restoredMsg:
		return m.handleRestored(msg), nil

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case voiceResultMsg:
		return m.handleVoiceResult(msg), nil

	case ConfigChangedMsg:
		return m.applyConfig(msg), nil

	case components.AlertDismissedMsg:
		return m, nil
	}

	return m, nil
}

// =============================================================================
// AUTH VIEW
// =============================================================================

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitAuth()
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.next()
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.prev()
	case key.Matches(msg, m.keys.SwitchForm):
		if m.busy {
			return m, nil
		}
		return m, m.form.toggleMode()
	}
	return m, m.form.update(msg)
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	f := m.form.loginForm()
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		m.alert.Show(components.AlertError, "Missing details", "Email and password are required.")
		return m, nil
	}

	m.startBusy()
	ctx, a := m.ctx, m.app
	if m.form.mode == formRegister {
		reg := m.form.registerForm()
		return m, func() tea.Msg {
			return actionDoneMsg{action: actionRegister, err: a.Register(ctx, reg)}
		}
	}
	return m, func() tea.Msg {
		return actionDoneMsg{action: actionLogin, err: a.Login(ctx, f)}
	}
}

// =============================================================================
// DASHBOARD VIEW
// =============================================================================

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()
	case key.Matches(msg, m.keys.Complete):
		return m.complete(), nil
	case key.Matches(msg, m.keys.ToggleHistory):
		return m.toggleHistory()
	case key.Matches(msg, m.keys.Voice):
		return m.toggleVoice()
	case key.Matches(msg, m.keys.Logout):
		if m.busy {
			return m, nil
		}
		m.app.Logout()
		return m.afterLogout("Signed out"), nil
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		return m, m.views.Transcript.Update(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput sends the input as a message, or runs it as a slash command.
// Submissions are ignored while a call is in flight.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	if m.busy {
		m.status.Note = "Please wait for the current reply"
		return m, nil
	}

	m.startBusy()
	ctx, a := m.ctx, m.app
	if commands.IsCommand(text) {
		parser := m.parser
		return m, func() tea.Msg {
			res, err := parser.Execute(&commands.Context{Ctx: ctx, App: a}, text)
			return actionDoneMsg{action: actionCommand, err: err, result: res}
		}
	}
	return m, func() tea.Msg {
		sent, err := a.SendMessage(ctx, text)
		return actionDoneMsg{action: actionSend, err: err, sent: sent}
	}
}

func (m Model) toggleHistory() (tea.Model, tea.Cmd) {
	profile := m.app.Profile()
	if m.busy || profile == nil {
		return m, nil
	}
	enabled := !profile.HistoryEnabled

	m.startBusy()
	ctx, a := m.ctx, m.app
	return m, func() tea.Msg {
		return actionDoneMsg{action: actionHistory, err: a.ToggleHistory(ctx, enabled)}
	}
}

// complete fills in a slash command or argument when the match is unique and
// lists the candidates otherwise.
func (m Model) complete() Model {
	lines := m.completer.Lines(m.input.Value())
	switch len(lines) {
	case 0:
	case 1:
		m.input.SetValue(lines[0] + " ")
		m.input.CursorEnd()
	default:
		m.status.Note = strings.Join(lines, "  ")
	}
	return m
}

// =============================================================================
// VOICE
// =============================================================================

func (m Model) toggleVoice() (tea.Model, tea.Cmd) {
	results, err := m.app.ToggleVoice(m.ctx)
	if err != nil {
		m.listening = false
		m.fail(err)
		return m, nil
	}
	if results == nil {
		m.listening = false
		m.status.SetStatus(components.StatusReady, "Voice input stopped")
		return m, nil
	}

	m.listening = true
	m.status.SetStatus(components.StatusListening, "Speak now, "+m.keys.Voice.Help().Key+" to stop")
	return m, waitForVoice(results)
}

// waitForVoice delivers the single result of a recognition session.
func waitForVoice(results <-chan voice.Result) tea.Cmd {
	return func() tea.Msg {
		return voiceResultMsg{result: <-results}
	}
}

func (m Model) handleVoiceResult(msg voiceResultMsg) Model {
	m.listening = false
	if m.app.State() != app.StateDashboard {
		// Logout stopped the recognition
		return m
	}
	res := msg.result
	switch {
	case res.Err != nil:
		m.logger.Info("voice input ended with error", zap.Error(res.Err))
		m.status.SetStatus(components.StatusError, "Voice input failed: "+res.Err.Error())
	case res.Transcript != "":
		m.input.SetValue(res.Transcript)
		m.input.CursorEnd()
		m.status.SetStatus(components.StatusReady, "Voice input captured, press enter to send")
	default:
		m.status.SetStatus(components.StatusReady, "")
	}
	return m
}

// =============================================================================
// RESULTS
// =============================================================================

// restore runs the startup session restore.
func (m Model) restore() tea.Cmd {
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		ok, err := a.Restore(ctx)
		return restoredMsg{ok: ok, err: err}
	}
}

// handleRestored reports restore failures on the status line rather than in
// an alert.
func (m Model) handleRestored(msg restoredMsg) Model {
	m.busy = false
	m.syncChrome()

	switch {
	case msg.err != nil:
		note := app.Message(msg.err)
		if errors.Is(msg.err, session.ErrExpired) {
			note = "Your session expired, please sign in again"
		}
		m.logger.Info("session restore failed", zap.Error(msg.err))
		m.status.SetStatus(components.StatusError, note)
	case msg.ok:
		m.input.Focus()
		m.status.SetStatus(components.StatusReady, "Welcome back")
	default:
		m.status.SetStatus(components.StatusReady, "")
	}
	return m
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.syncChrome()
	m.status.SetStatus(components.StatusReady, "")

	switch msg.action {
	case actionRegister:
		if msg.err == nil {
			m.form.reset()
			cmd := m.form.setMode(formLogin)
			m.alert.Show(components.AlertInfo, "Welcome", app.RegisteredMessage)
			return m, cmd
		}

	case actionLogin:
		if msg.err == nil {
			m.form.reset()
			m.form.setFocus(fieldEmail)
			name := ""
			if p := m.app.Profile(); p != nil {
				name = p.DisplayName
			}
			m.status.SetStatus(components.StatusReady, strings.TrimSpace("Welcome "+name))
			return m, m.input.Focus()
		}
		// A failed bootstrap after a good login lands here too
		m.form.fields[fieldPassword].Reset()

	case actionSend:
		if msg.sent {
			m.input.Reset()
		}

	case actionCommand:
		if msg.err == nil {
			m.input.Reset()
			return m.applyEffect(msg.result)
		}
	}

	switch {
	case errors.Is(msg.err, app.ErrSignedOut):
		m.logger.Debug("result dropped after logout", zap.Error(msg.err))
	case msg.err != nil:
		m.fail(msg.err)
	}
	return m, nil
}

// applyEffect carries out what a slash command asked for.
func (m Model) applyEffect(res commands.Result) (tea.Model, tea.Cmd) {
	switch res.Effect {
	case commands.EffectQuit:
		return m, tea.Quit
	case commands.EffectLogout:
		return m.afterLogout(res.Output), nil
	case commands.EffectVoice:
		return m.toggleVoice()
	case commands.EffectShowMood:
		if res.Output == "" {
			res.Output = "Mood chart refreshed"
		}
	}

	if strings.Contains(res.Output, "\n") {
		m.alert.Show(components.AlertInfo, "Help", res.Output)
	} else {
		m.status.Note = res.Output
	}
	return m, nil
}

// afterLogout resets the views for the login form.
func (m Model) afterLogout(note string) Model {
	m.listening = false
	m.input.Reset()
	m.input.Blur()
	m.form.reset()
	m.form.setMode(formLogin)
	m.syncChrome()
	m.status.SetStatus(components.StatusReady, note)
	return m
}

// applyConfig applies reloaded UI settings.
func (m Model) applyConfig(msg ConfigChangedMsg) Model {
	if msg.Config == nil {
		return m
	}
	ui := msg.Config.UI
	m.views.Transcript.SetOptions(transcript.Options{
		AssistantName: ui.AssistantName,
		TimeFormat:    ui.TimeFormat,
		Markdown:      ui.Markdown,
	})
	m.views.Chart.SetDateFormat(ui.DateFormat)
	m.status.Note = "Configuration reloaded"
	return m
}

func (m *Model) startBusy() {
	m.busy = true
	m.status.SetStatus(components.StatusBusy, "")
}

// fail shows err in the alert modal.
func (m *Model) fail(err error) {
	m.logger.Debug("action failed", zap.Error(err))
	m.status.SetStatus(components.StatusError, "")
	m.alert.Show(components.AlertError, "", app.Message(err))
}
