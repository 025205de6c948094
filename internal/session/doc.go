// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the signed-in user's credential and profile.
//
// The credential is persisted so a restart can resume the session; the
// profile only lives in memory and is refetched on every bootstrap.
//
// # Key Types
//
//   - Store: Credential and profile, safe for concurrent use
//   - KV: The durable key/value store the credential is written to
//
// # Usage
//
//	sess := session.New(kvStore)
//	restored, err := sess.Restore()
//	if errors.Is(err, session.ErrExpired) {
//	    // stale token was discarded, show the login view
//	}
package session
