// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package avatar draws the companion's face, which follows the mood of the
// latest reply.
package avatar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
)

// =============================================================================
// FACE
// =============================================================================

// Mouth is the curve of the mouth.
type Mouth int

const (
	MouthFlat Mouth = iota
	MouthUp
	MouthDown
)

// String returns the mouth name.
func (m Mouth) String() string {
	switch m {
	case MouthUp:
		return "up"
	case MouthDown:
		return "down"
	default:
		return "flat"
	}
}

// Face is the drawable state derived from a mood.
type Face struct {
	Mouth    Mouth
	EyeScale float64
}

// FaceFor derives the face for a mood. Moods other than uplifted and
// concerned get the neutral face.
func FaceFor(m model.Mood) Face {
	switch m {
	case model.MoodUplifted:
		return Face{Mouth: MouthUp, EyeScale: 1.1}
	case model.MoodConcerned:
		return Face{Mouth: MouthDown, EyeScale: 0.8}
	default:
		return Face{Mouth: MouthFlat, EyeScale: 1.0}
	}
}

// =============================================================================
// AVATAR
// =============================================================================

// Avatar holds the current mood. Safe for concurrent use.
type Avatar struct {
	mu          sync.RWMutex
	initialized bool
	mood        model.Mood
}

// New returns an avatar that has not been initialized yet.
func New() *Avatar {
	return &Avatar{}
}

// Init prepares the face. Only the first call has an effect: it sets the
// mood to calm. Later calls keep the current mood.
func (a *Avatar) Init() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return
	}
	a.initialized = true
	a.mood = model.MoodCalm
}

// Initialized reports whether Init has run.
func (a *Avatar) Initialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialized
}

// SetMood records the mood. Before Init there is no face, so nothing is drawn.
func (a *Avatar) SetMood(m model.Mood) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mood = m
}

// Mood returns the current mood.
func (a *Avatar) Mood() model.Mood {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mood
}

// Face returns the derived face. ok is false before Init.
func (a *Avatar) Face() (face Face, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return Face{}, false
	}
	return FaceFor(a.mood), true
}

// View draws the face, or "" before Init.
func (a *Avatar) View() string {
	face, ok := a.Face()
	if !ok {
		return ""
	}
	mood := a.Mood()

	eye := eyeGlyph(face.EyeScale)
	lines := []string{
		fmt.Sprintf(" %s   %s ", eye, eye),
		mouthGlyph(face.Mouth),
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.MoodColor(mood)).
		Padding(0, 1).
		Align(lipgloss.Center)

	caption := lipgloss.NewStyle().
		Foreground(styles.MoodColor(mood)).
		Render(model.MoodFromCode(mood.Code()).Label())

	return lipgloss.JoinVertical(lipgloss.Center, box.Render(strings.Join(lines, "\n")), caption)
}

// eyeGlyph picks an eye size for a scale.
func eyeGlyph(scale float64) string {
	switch {
	case scale < 1.0:
		return "-"
	case scale > 1.0:
		return "O"
	default:
		return "o"
	}
}

func mouthGlyph(m Mouth) string {
	switch m {
	case MouthUp:
		return " \\___/ "
	case MouthDown:
		return " /‾‾‾\\ "
	default:
		return " ───── "
	}
}
