// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard provides the Bubble Tea model of the companion TUI.
//
// The model has two views, chosen by the controller's state: the auth view
// with the login and registration forms, and the dashboard with the chat
// transcript, the avatar, the mood chart and the profile panel. Every
// controller call runs as a tea.Cmd off the render loop and reports back
// with a message; while one is in flight submissions are ignored and the
// status bar shows a spinner. Failures open a blocking alert, except a
// failed session restore, which is reported on the status line.
//
// # Key Types
//
//   - Model: the tea.Model
//   - App: the controller interface the model drives
//   - Views: the renderers the controller updates
//   - KeyMap: key bindings
//   - ConfigChangedMsg: applies a reloaded configuration
//
// # Usage
//
//	m := dashboard.New(dashboard.Options{App: ctrl, Views: views, Theme: theme})
//	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
//	_, err := p.Run()
package dashboard
