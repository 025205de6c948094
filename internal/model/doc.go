// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the companion client.
//
// The types mirror the companion server's wire format so they can be decoded
// straight from API responses.
//
// # Key Types
//
//   - Profile: The signed-in user's display name, email and history preference
//   - ChatMessage: One transcript entry with language and sentiment metadata
//   - Sender: Who wrote a message (user or assistant)
//   - Mood: concerned, calm or uplifted, with a stable numeric code
//   - MoodEntry: A dated mood observation used for the trend chart
//   - Date: A calendar date encoded as YYYY-MM-DD
//
// # Usage
//
// Map moods to chart codes and back:
//
//	code := model.MoodUplifted.Code()   // 2
//	label := model.MoodFromCode(code)   // model.MoodUplifted
//
// Sort entries for charting:
//
//	model.SortMoodEntries(entries)
package model
