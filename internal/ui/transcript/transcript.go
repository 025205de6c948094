// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript renders the chat as a scrolling list of message bubbles.
package transcript

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
)

// MetaSeparator joins the parts of a bubble's meta line.
const MetaSeparator = " • "

// Options configures labels and formatting.
type Options struct {
	// AssistantName labels companion messages
	AssistantName string
	// TimeFormat is the Go layout for message times
	TimeFormat string
	// Markdown renders companion replies as markdown
	Markdown bool
}

// Renderer holds the transcript and its viewport. Safe for concurrent use.
type Renderer struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	userName string
	opts     Options
	theme    *styles.Theme
	md       *glamour.TermRenderer
	viewport viewport.Model
	width    int
}

// New creates an empty transcript.
func New(theme *styles.Theme, opts Options) *Renderer {
	if opts.AssistantName == "" {
		opts.AssistantName = "CompanionAI"
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	r := &Renderer{opts: opts, theme: theme, viewport: vp, width: 80}
	r.md = newMarkdown(theme, opts.Markdown, r.bubbleWidth())
	return r
}

// SetOptions applies new labels and formats and redraws.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opts.AssistantName == "" {
		opts.AssistantName = r.opts.AssistantName
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = r.opts.TimeFormat
	}
	r.opts = opts
	r.md = newMarkdown(r.theme, opts.Markdown, r.bubbleWidth())
	r.refresh()
}

// SetUserName sets the label of the user's own messages.
func (r *Renderer) SetUserName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userName = name
	r.refresh()
}

// SetSize resizes the viewport.
func (r *Renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
	r.viewport.Width = width
	r.viewport.Height = height
	r.md = newMarkdown(r.theme, r.opts.Markdown, r.bubbleWidth())
	r.refresh()
}

// =============================================================================
// CONTENT
// =============================================================================

// Append adds a bubble and scrolls to it.
func (r *Renderer) Append(msg model.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	r.refresh()
}

// Clear removes every bubble.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
	r.refresh()
}

// LoadAll replaces the transcript with msgs, in order.
func (r *Renderer) LoadAll(msgs []model.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append([]model.ChatMessage(nil), msgs...)
	r.refresh()
}

// Messages returns a copy of the transcript.
func (r *Renderer) Messages() []model.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ChatMessage(nil), r.messages...)
}

// Len returns the number of bubbles.
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// MetaLine formats "<sender> • <LANG> • <sentiment> • <time>" for msg.
func (r *Renderer) MetaLine(msg model.ChatMessage) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metaLine(msg)
}

func (r *Renderer) metaLine(msg model.ChatMessage) string {
	sender := r.userName
	if msg.Sender.IsAssistant() {
		sender = r.opts.AssistantName
	}
	stamp := ""
	if !msg.CreatedAt.IsZero() {
		stamp = msg.CreatedAt.Local().Format(r.opts.TimeFormat)
	}
	return strings.Join([]string{sender, LanguageLabel(msg.Language), msg.Sentiment, stamp}, MetaSeparator)
}

// LanguageLabel upper-cases a language code exactly as the server sent it,
// so "en-US" shows as "EN-US".
func LanguageLabel(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

// =============================================================================
// VIEW
// =============================================================================

// Update forwards scroll keys and mouse events to the viewport.
func (r *Renderer) Update(msg tea.Msg) tea.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

// AtBottom reports whether the newest bubble is visible.
func (r *Renderer) AtBottom() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport.AtBottom()
}

// View renders the visible part of the transcript.
func (r *Renderer) View() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport.View()
}

// Render draws a single bubble without the viewport, for line-mode output.
func (r *Renderer) Render(msg model.ChatMessage) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bubble(msg)
}

// refresh redraws the content and scrolls to the newest bubble. Callers hold mu.
func (r *Renderer) refresh() {
	parts := make([]string, 0, len(r.messages))
	for _, msg := range r.messages {
		parts = append(parts, r.bubble(msg))
	}
	r.viewport.SetContent(strings.Join(parts, "\n"))
	r.viewport.GotoBottom()
}

func (r *Renderer) bubble(msg model.ChatMessage) string {
	style := r.theme.UserBubble
	align := lipgloss.Right
	content := msg.Content
	if msg.Sender.IsAssistant() {
		style = r.theme.AssistantBubble
		align = lipgloss.Left
		content = r.markdown(content)
	}

	// Width covers the horizontal padding but not the border
	body := style.Width(bubbleTextWidth(content, r.bubbleWidth()) + 2).Render(content)
	meta := r.theme.BubbleMeta.Render(r.metaLine(msg))
	block := lipgloss.JoinVertical(align, body, meta)
	return lipgloss.PlaceHorizontal(r.width, align, block)
}

func (r *Renderer) markdown(content string) string {
	if r.md == nil {
		return content
	}
	out, err := r.md.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// bubbleWidth is the widest a bubble's text may be.
func (r *Renderer) bubbleWidth() int {
	w := r.width * 3 / 4
	if w < 20 {
		w = 20
	}
	return w
}

// bubbleTextWidth shrinks short messages to fit their text.
func bubbleTextWidth(content string, max int) int {
	widest := 0
	for _, line := range strings.Split(content, "\n") {
		if w := lipgloss.Width(line); w > widest {
			widest = w
		}
	}
	if widest > max {
		return max
	}
	return widest
}

func newMarkdown(theme *styles.Theme, enabled bool, width int) *glamour.TermRenderer {
	if !enabled {
		return nil
	}
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return md
}
