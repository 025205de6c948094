// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app contains the view controller shared by the TUI and the REPL.
//
// The controller owns the two-state view machine (unauthenticated and
// dashboard) and every user action: register, login, bootstrap, send, toggle
// history, logout, restore and voice. Front ends only translate key presses
// into these calls and show the returned errors.
//
// # Key Types
//
//   - Controller: State machine and actions
//   - Deps: Collaborators the controller drives
//   - Backend: The server endpoints the controller needs
//
// # Concurrency
//
// Only one action runs at a time. An action started while another is in
// flight fails with ErrBusy. Renderers are read by the UI while actions
// write to them, so they must be safe for concurrent use.
//
// # Usage
//
//	ctrl := app.New(app.Deps{API: client, Session: sess, Avatar: av, Chart: chart, Transcript: tr})
//	if err := ctrl.Login(ctx, app.LoginForm{Email: email, Password: pw}); err != nil {
//	    showAlert(app.Message(err))
//	}
package app
