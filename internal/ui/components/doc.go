// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the shared chrome of the companion TUI.

# Key Types

Header (header.go) - Title bar with the brand, the signed-in user, the
history preference and the latest mood.

StatusBar (statusbar.go) - Bottom line with the activity state, a transient
note and short key help rendered by bubbles/help.

Alert (alert.go) - Blocking modal used to surface action failures. While it
is visible the dashboard routes every key to it.

# Usage

	theme := styles.NewTheme("auto")
	alert := components.NewAlert(theme)
	alert.SetSize(width, height)
	alert.Show(components.AlertError, "", "Incorrect email or password")
	alert, cmd = alert.Update(keyMsg)
*/
package components
