// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of both views.
type KeyMap struct {
	Submit        key.Binding
	NextField     key.Binding
	PrevField     key.Binding
	SwitchForm    key.Binding
	Complete      key.Binding
	ToggleHistory key.Binding
	Voice         key.Binding
	Logout        key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		SwitchForm: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "login/register"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "history"),
		),
		Voice: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "voice"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "logout"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// AuthHelp returns the bindings shown on the auth view.
func (k KeyMap) AuthHelp() []key.Binding {
	return []key.Binding{k.NextField, k.SwitchForm, k.Quit}
}

// DashboardHelp returns the bindings shown on the dashboard.
func (k KeyMap) DashboardHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleHistory, k.Voice, k.Logout, k.Quit}
}
