// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/companion-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the client's activity state.
type Status int

const (
	StatusReady Status = iota
	StatusBusy
	StatusListening
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusBusy:
		return "Working..."
	case StatusListening:
		return "Listening..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a marker for the status that does not depend on color.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusListening:
		return "((·))"
	default:
		return "…"
	}
}

// StatusBar is the bottom line: status, a transient note and key help.
type StatusBar struct {
	Status  Status
	Note    string
	Spinner string // Current spinner frame, shown while busy
	Width   int
	help    help.Model
	theme   *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.TextMuted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.TextMuted)
	return &StatusBar{Width: 80, help: h, theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
	s.help.Width = width / 2
}

// SetStatus changes the status and replaces the note.
func (s *StatusBar) SetStatus(status Status, note string) {
	s.Status = status
	s.Note = note
}

// View renders the bar with the short help of bindings on the right.
func (s *StatusBar) View(bindings []key.Binding) string {
	icon := s.Status.Icon()
	if s.Status == StatusBusy && s.Spinner != "" {
		icon = s.Spinner
	}

	left := s.statusStyle().Render(icon + " " + s.Status.String())
	if s.Note != "" {
		left += " " + s.theme.Hint.Render(s.Note)
	}
	right := s.help.ShortHelpView(bindings)

	inner := s.Width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return s.theme.StatusLine.Render(left)
	}
	return s.theme.StatusLine.Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	case StatusListening:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	case StatusBusy:
		return lipgloss.NewStyle().Foreground(styles.Violet)
	default:
		return lipgloss.NewStyle().Foreground(styles.Emerald)
	}
}
