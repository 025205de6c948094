// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current view. An open alert replaces everything else.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.alert.Visible() {
		return m.alert.View()
	}
	if m.app.State() == app.StateDashboard {
		return m.viewDashboard()
	}
	return m.viewAuth()
}

func (m Model) viewAuth() string {
	labels := []string{"Email", "Password", "Display name (optional)"}

	rows := []string{m.theme.PanelTitle.Render(m.form.title()), ""}
	for i := 0; i < m.form.count(); i++ {
		style := m.theme.Input
		if i == m.form.focus {
			style = m.theme.InputFocused
		}
		rows = append(rows,
			m.theme.Label.Render(labels[i]),
			style.Width(40).Render(m.form.fields[i].View()),
		)
	}

	button := m.theme.ButtonActive
	if m.busy {
		button = m.theme.Button
	}
	label := m.form.title()
	if m.busy {
		label = m.spinner.View() + " " + label
	}
	rows = append(rows, "", button.Render(label))

	other := "New here? ctrl+n to create an account"
	if m.form.mode == formRegister {
		other = "Have an account? ctrl+n to sign in"
	}
	rows = append(rows, "", m.theme.Hint.Render(other))

	panel := m.theme.Panel.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	header := m.header.View()
	status := m.status.View(m.keys.AuthHelp())
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, panel)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) viewDashboard() string {
	mainHeight := m.mainHeight()

	chat := m.views.Transcript.View()
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		chat = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.width-sidebarWidth-1).Render(chat),
			" ",
			m.viewSidebar(mainHeight),
		)
	}
	main := lipgloss.NewStyle().Height(mainHeight).MaxHeight(mainHeight).Render(chat)

	inputStyle := m.theme.InputFocused
	if m.busy {
		inputStyle = m.theme.Input
	}
	input := inputStyle.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		main,
		input,
		m.status.View(m.keys.DashboardHelp()),
	)
}

func (m Model) viewSidebar(height int) string {
	panel := m.theme.Panel.Width(sidebarWidth - 2)
	inner := sidebarWidth - 4

	face := m.views.Avatar.View()
	companion := panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.PanelTitle.Render("Companion"),
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, face),
	))

	mood := panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.PanelTitle.Render("Mood"),
		m.views.Chart.View(inner),
	))

	var lines []string
	if p := m.app.Profile(); p != nil {
		lines = append(lines, m.theme.Label.Render(p.DisplayName), m.theme.Hint.Render(p.Email))
		state := "off"
		if p.HistoryEnabled {
			state = "on"
		}
		lines = append(lines, "History: "+state+" "+m.theme.Hint.Render("(ctrl+t)"))
	}
	if m.voiceHint {
		mic := "Voice: ctrl+r"
		if m.listening {
			mic = styles.RenderWarning("Listening...")
		}
		lines = append(lines, mic)
	}
	profile := panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{m.theme.PanelTitle.Render("You")}, lines...)...,
	))

	sidebar := lipgloss.JoinVertical(lipgloss.Left, companion, mood, profile)
	return lipgloss.NewStyle().MaxHeight(height).Render(strings.TrimRight(sidebar, "\n"))
}
