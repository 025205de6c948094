// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/jeranaias/companion-tui/internal/commands"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/voice"
)

// =============================================================================
// ACTION MESSAGES
// =============================================================================

// action names a controller call that ran off the render loop.
type action int

const (
	actionRegister action = iota
	actionLogin
	actionSend
	actionHistory
	actionCommand
)

// restoredMsg reports the startup session restore.
type restoredMsg struct {
	ok  bool
	err error
}

// actionDoneMsg reports a finished controller call.
type actionDoneMsg struct {
	action action
	err    error
	// sent is set for actionSend when the message reached the server
	sent bool
	// result is set for actionCommand
	result commands.Result
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// voiceResultMsg delivers the end of a recognition session.
type voiceResultMsg struct {
	result voice.Result
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigChangedMsg carries a reloaded configuration. Send it to the program
// from a config.Watch callback.
type ConfigChangedMsg struct {
	Config *config.Config
}
