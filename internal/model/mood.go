// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// MOOD
// =============================================================================

// Mood is the companion's reading of how a conversation is going.
type Mood string

const (
	MoodConcerned Mood = "concerned"
	MoodCalm      Mood = "calm"
	MoodUplifted  Mood = "uplifted"
)

// AllMoods lists the moods in code order.
var AllMoods = []Mood{MoodConcerned, MoodCalm, MoodUplifted}

// Code returns the numeric encoding used for charting.
// Unknown moods encode as concerned (0).
func (m Mood) Code() int {
	switch m {
	case MoodUplifted:
		return 2
	case MoodCalm:
		return 1
	default:
		return 0
	}
}

// Label returns the capitalized display name.
func (m Mood) Label() string {
	switch m {
	case MoodUplifted:
		return "Uplifted"
	case MoodCalm:
		return "Calm"
	case MoodConcerned:
		return "Concerned"
	default:
		return string(m)
	}
}

// IsValid reports whether m is one of the known moods.
func (m Mood) IsValid() bool {
	return m == MoodConcerned || m == MoodCalm || m == MoodUplifted
}

// MoodFromCode inverts Code. Values other than 1 and 2 map to concerned.
func MoodFromCode(code int) Mood {
	switch code {
	case 2:
		return MoodUplifted
	case 1:
		return MoodCalm
	default:
		return MoodConcerned
	}
}

// ParseMood parses a mood name case-insensitively.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown mood %q (want concerned, calm or uplifted)", s)
	}
	return m, nil
}

// =============================================================================
// DATE
// =============================================================================

// DateLayout is the wire layout of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. A full timestamp is accepted
// and truncated to its date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = NewDate(t)
	return nil
}

// =============================================================================
// MOOD ENTRY
// =============================================================================

// MoodEntry is one dated mood observation.
type MoodEntry struct {
	ID        int64     `json:"id,omitempty"`
	Mood      Mood      `json:"mood"`
	Source    string    `json:"source,omitempty"`
	Date      Date      `json:"mood_date"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// NewMoodEntry is the body posted when logging a mood manually.
type NewMoodEntry struct {
	Mood   Mood   `json:"mood"`
	Source string `json:"source"`
	Date   Date   `json:"mood_date"`
}

// SortMoodEntries sorts entries ascending by date. Entries on the same date
// keep their relative order.
func SortMoodEntries(entries []MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date.Time)
	})
}
