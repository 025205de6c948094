// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/companion-tui/internal/ui/styles"
)

// =============================================================================
// ALERT MODAL
// =============================================================================

// AlertKind selects the alert's color and title.
type AlertKind int

const (
	AlertError AlertKind = iota
	AlertInfo
)

// AlertDismissedMsg is sent when the user closes an alert.
type AlertDismissedMsg struct{}

// Alert is a blocking modal. While visible it swallows key input until the
// user dismisses it.
type Alert struct {
	kind    AlertKind
	title   string
	message string
	visible bool
	width   int
	height  int
	dismiss key.Binding
	theme   *styles.Theme
}

// NewAlert creates a hidden alert.
func NewAlert(theme *styles.Theme) Alert {
	return Alert{
		theme: theme,
		dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "dismiss"),
		),
	}
}

// Show opens the alert with message. An empty title uses a default for the
// kind.
func (a *Alert) Show(kind AlertKind, title, message string) {
	if title == "" {
		title = "Something went wrong"
		if kind == AlertInfo {
			title = "Notice"
		}
	}
	a.kind = kind
	a.title = title
	a.message = message
	a.visible = true
}

// Hide closes the alert.
func (a *Alert) Hide() {
	a.visible = false
}

// Visible reports whether the alert is open.
func (a Alert) Visible() bool {
	return a.visible
}

// Message returns the alert text.
func (a Alert) Message() string {
	return a.message
}

// SetSize sets the area the alert is centered in.
func (a *Alert) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// Update handles a key press while the alert is open.
func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if !a.visible {
		return a, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, a.dismiss) {
		a.visible = false
		return a, func() tea.Msg { return AlertDismissedMsg{} }
	}
	return a, nil
}

// View renders the alert centered in its area, or "" when hidden.
func (a Alert) View() string {
	if !a.visible {
		return ""
	}

	boxWidth := 50
	if a.width > 0 && a.width-4 < boxWidth {
		boxWidth = a.width - 4
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	titleStyle := a.theme.AlertTitle
	box := a.theme.AlertBox
	indicator := styles.StatusIndicators.Error
	if a.kind == AlertInfo {
		titleStyle = titleStyle.Foreground(styles.Cyan)
		box = box.BorderForeground(styles.Cyan)
		indicator = styles.StatusIndicators.Info
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(indicator+" "+a.title),
		"",
		lipgloss.NewStyle().Width(boxWidth-8).Foreground(styles.TextPrimary).Render(a.message),
		"",
		a.theme.Hint.Render("Press enter to dismiss"),
	)
	rendered := box.Width(boxWidth).Render(content)

	if a.width <= 0 || a.height <= 0 {
		return rendered
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, rendered)
}
