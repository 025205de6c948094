// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package moodchart turns mood entries into a small terminal line chart.
//
// A single Chart is created on the first Render and reused afterwards; later
// renders replace its series in place.
package moodchart

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
	"github.com/jeranaias/companion-tui/internal/util"
)

// DefaultDateFormat labels points when no layout is configured.
const DefaultDateFormat = "Jan 2"

// Axis bounds. Codes outside the range are clamped when drawn.
const (
	MinCode = 0
	MaxCode = 2
)

// axisWidth is the column width of the y-axis labels.
const axisWidth = 10

// TickLabel names a y-axis value: 2 is Uplifted, 1 is Calm, and anything
// else is Concerned.
func TickLabel(code int) string {
	switch code {
	case 2:
		return "Uplifted"
	case 1:
		return "Calm"
	default:
		return "Concerned"
	}
}

// =============================================================================
// CHART
// =============================================================================

// Chart is the plotted series.
type Chart struct {
	labels  []string
	data    []int
	updates int
}

// Labels returns a copy of the x-axis labels.
func (c *Chart) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Data returns a copy of the mood codes.
func (c *Chart) Data() []int {
	return append([]int(nil), c.data...)
}

// Updates counts renders after the one that created the chart.
func (c *Chart) Updates() int {
	return c.updates
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer owns the chart. Safe for concurrent use.
type Renderer struct {
	mu         sync.RWMutex
	chart      *Chart
	dateFormat string
}

// New creates a renderer labelling points with dateFormat.
func New(dateFormat string) *Renderer {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &Renderer{dateFormat: dateFormat}
}

// SetDateFormat changes the label layout for the next Render.
func (r *Renderer) SetDateFormat(layout string) {
	if layout == "" {
		layout = DefaultDateFormat
	}
	r.mu.Lock()
	r.dateFormat = layout
	r.mu.Unlock()
}

// Render plots entries in ascending date order. The caller's slice is left
// untouched.
func (r *Renderer) Render(entries []model.MoodEntry) {
	sorted := append([]model.MoodEntry(nil), entries...)
	model.SortMoodEntries(sorted)

	r.mu.Lock()
	defer r.mu.Unlock()

	labels := make([]string, len(sorted))
	data := make([]int, len(sorted))
	for i, e := range sorted {
		labels[i] = e.Date.Format(r.dateFormat)
		data[i] = e.Mood.Code()
	}

	if r.chart == nil {
		r.chart = &Chart{labels: labels, data: data}
		return
	}
	r.chart.labels = labels
	r.chart.data = data
	r.chart.updates++
}

// Chart returns a snapshot of the chart, or nil before the first Render.
func (r *Renderer) Chart() *Chart {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.chart == nil {
		return nil
	}
	return &Chart{labels: r.chart.Labels(), data: r.chart.Data(), updates: r.chart.updates}
}

// View draws the chart in at most width columns. When there are more points
// than columns, the most recent ones are shown.
func (r *Renderer) View(width int) string {
	chart := r.Chart()
	muted := lipgloss.NewStyle().Foreground(styles.TextMuted)
	if chart == nil || len(chart.data) == 0 {
		return muted.Render("No mood entries yet")
	}

	plotWidth := width - axisWidth - 2
	if plotWidth < 2 {
		plotWidth = 2
	}
	const colWidth = 2
	maxPoints := plotWidth / colWidth

	data, labels := chart.data, chart.labels
	if len(data) > maxPoints {
		data = data[len(data)-maxPoints:]
		labels = labels[len(labels)-maxPoints:]
	}

	line := lipgloss.NewStyle().Foreground(styles.Violet)
	var b strings.Builder
	for level := MaxCode; level >= MinCode; level-- {
		b.WriteString(muted.Render(util.PadLeft(TickLabel(level), axisWidth)))
		b.WriteString(" ┤")
		for i, code := range data {
			b.WriteString(line.Render(cell(clamp(code), level, prevLevel(data, i))))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", axisWidth+1))
	b.WriteString("└")
	b.WriteString(strings.Repeat("─", len(data)*colWidth))
	b.WriteString("\n")

	first, last := labels[0], labels[len(labels)-1]
	span := len(data) * colWidth
	axis := first
	if len(labels) > 1 {
		gap := span - util.StringWidth(first) - util.StringWidth(last)
		if gap < 1 {
			gap = 1
		}
		axis = first + strings.Repeat(" ", gap) + last
	}
	b.WriteString(strings.Repeat(" ", axisWidth+2))
	b.WriteString(muted.Render(axis))

	return b.String()
}

// cell draws one two-column point. A vertical stroke joins it to the
// previous point's level.
func cell(code, level, prev int) string {
	if code == level {
		return "● "
	}
	if prev < 0 {
		return "  "
	}
	lo, hi := code, prev
	if lo > hi {
		lo, hi = hi, lo
	}
	if level > lo && level < hi {
		return "│ "
	}
	return "  "
}

func prevLevel(data []int, i int) int {
	if i == 0 {
		return -1
	}
	return clamp(data[i-1])
}

func clamp(code int) int {
	if code < MinCode {
		return MinCode
	}
	if code > MaxCode {
		return MaxCode
	}
	return code
}
