// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice provides push-to-talk speech input.
//
// The Adapter toggles between idle and listening. Starting a recognition
// returns a channel that delivers exactly one Result when it ends; stopping
// early delivers an empty Result.
//
// # Key Types
//
//   - Recognizer: Captures and transcribes one utterance
//   - Adapter: Idle/listening state machine around a Recognizer
//   - WhisperRecognizer: Records with an external command and transcribes
//     with an OpenAI-compatible server
//
// # Usage
//
//	adapter := voice.NewAdapter(voice.NewWhisperRecognizer(cfg.Voice, logger), logger)
//	results, err := adapter.Toggle(ctx)
//	if errors.Is(err, voice.ErrUnsupported) {
//	    // tell the user
//	}
//	if results != nil {
//	    res := <-results
//	    input.SetValue(res.Transcript)
//	}
package voice
