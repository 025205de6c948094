// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar shown above both views.
type Header struct {
	Title    string // Brand (default: "Companion")
	UserName string // Signed-in display name, empty on the auth view
	History  bool   // Whether chat history is being kept
	Mood     model.Mood
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "Companion",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetProfile shows the user's name and history preference. A nil profile
// clears them.
func (h *Header) SetProfile(p *model.Profile) {
	if p == nil {
		h.UserName = ""
		h.History = false
		return
	}
	h.UserName = p.DisplayName
	if h.UserName == "" {
		h.UserName = p.Email
	}
	h.History = p.HistoryEnabled
}

// SetMood updates the mood badge.
func (h *Header) SetMood(m model.Mood) {
	h.Mood = m
}

// View renders the header as a single line padded to Width.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}

	brand := h.theme.HeaderBrand.Render("◆ " + h.Title)

	var parts []string
	if h.UserName != "" {
		parts = append(parts, h.UserName)
		if h.History {
			parts = append(parts, "history on")
		} else {
			parts = append(parts, "history off")
		}
	}
	meta := h.theme.HeaderMeta.Render(strings.Join(parts, " · "))

	if h.Mood.IsValid() {
		badge := lipgloss.NewStyle().
			Foreground(styles.MoodColor(h.Mood)).
			Bold(true).
			Render(h.Mood.Label())
		if meta != "" {
			meta += "  "
		}
		meta += badge
	}

	// Header padding takes two columns
	inner := width - 2
	gap := inner - lipgloss.Width(brand) - lipgloss.Width(meta)
	if gap < 1 {
		return h.theme.Header.Width(width).Render(brand)
	}
	return h.theme.Header.Width(width).Render(brand + strings.Repeat(" ", gap) + meta)
}
