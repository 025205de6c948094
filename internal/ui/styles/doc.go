// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for companion.
//
// # Key Types
//
//   - Theme: Lip Gloss styles for every part of the client
//   - LayoutMode: Narrow or wide dashboard layout
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	theme.SetSize(width, height)
//	bubble := theme.UserBubble.Render(text)
//
// Mood accents come from MoodColor so the avatar, chart and transcript agree.
package styles
