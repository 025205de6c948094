// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jeranaias/companion-tui/internal/model"
)

// =============================================================================
// USERS
// =============================================================================

// CurrentUser fetches the profile of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.CallJSON(ctx, "/users/me", Options{}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateSettings patches the user's settings and returns the updated profile.
func (c *Client) UpdateSettings(ctx context.Context, settings model.Settings) (*model.Profile, error) {
	var profile model.Profile
	err := c.CallJSON(ctx, "/users/me", Options{Method: http.MethodPatch, Body: settings}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// =============================================================================
// CHAT
// =============================================================================

// History returns stored messages oldest first. limit <= 0 uses the server
// default.
func (c *Client) History(ctx context.Context, limit int) ([]model.ChatMessage, error) {
	opts := Options{}
	if limit > 0 {
		opts.Query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var msgs []model.ChatMessage
	if err := c.CallJSON(ctx, "/chat/history", opts, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Respond posts a message and returns the companion's reply.
func (c *Client) Respond(ctx context.Context, req model.ChatRequest) (*model.ChatReply, error) {
	var reply model.ChatReply
	err := c.CallJSON(ctx, "/chat/respond", Options{Method: http.MethodPost, Body: req}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// =============================================================================
// MOOD
// =============================================================================

// MoodEntries lists mood entries between start and end inclusive. Zero dates
// leave that side open.
func (c *Client) MoodEntries(ctx context.Context, start, end model.Date) ([]model.MoodEntry, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start", start.String())
	}
	if !end.IsZero() {
		query.Set("end", end.String())
	}

	var entries []model.MoodEntry
	if err := c.CallJSON(ctx, "/mood/entries", Options{Query: query}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateMoodEntry records a mood for a day.
func (c *Client) CreateMoodEntry(ctx context.Context, entry model.NewMoodEntry) (*model.MoodEntry, error) {
	if !entry.Mood.IsValid() {
		return nil, fmt.Errorf("invalid mood %q", entry.Mood)
	}

	var created model.MoodEntry
	err := c.CallJSON(ctx, "/mood/entries", Options{Method: http.MethodPost, Body: entry}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteMoodEntry removes one mood entry.
func (c *Client) DeleteMoodEntry(ctx context.Context, id int64) error {
	path := "/mood/entries/" + strconv.FormatInt(id, 10)
	_, err := c.Call(ctx, path, Options{Method: http.MethodDelete})
	return err
}
