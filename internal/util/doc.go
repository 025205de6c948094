// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across companion packages.
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - TruncateWidth, PadRight, PadLeft, StringWidth: terminal-column aware
//     string helpers backed by go-runewidth
package util
