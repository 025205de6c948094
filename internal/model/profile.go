// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// PROFILE
// =============================================================================

// Profile is the signed-in user as returned by the current-user endpoint.
// The server owns it; the client mirrors it after every fetch.
type Profile struct {
	ID             int64     `json:"id,omitempty"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	HistoryEnabled bool      `json:"history_enabled"`
	CreatedAt      Timestamp `json:"created_at,omitempty"`
}

// Registration is the body posted to the registration endpoint.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// Settings is a partial profile update. Nil fields are left unchanged.
type Settings struct {
	HistoryEnabled *bool   `json:"history_enabled,omitempty"`
	DisplayName    *string `json:"display_name,omitempty"`
}

// HistorySetting returns a Settings that only changes the history preference.
func HistorySetting(enabled bool) Settings {
	return Settings{HistoryEnabled: &enabled}
}

// DisplayNameSetting returns a Settings that only changes the display name.
func DisplayNameSetting(name string) Settings {
	return Settings{DisplayName: &name}
}
