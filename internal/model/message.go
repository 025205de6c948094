// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "ai" // wire value used by the server
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// IsAssistant reports whether the message came from the companion.
// The server has used both "ai" and "assistant" for replies.
func (s Sender) IsAssistant() bool {
	return s == SenderAssistant || strings.EqualFold(string(s), "assistant")
}

// =============================================================================
// CHAT MESSAGE
// =============================================================================

// ChatMessage is a single transcript entry. It is immutable once created.
type ChatMessage struct {
	ID        int64     `json:"id,omitempty"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Sentiment string    `json:"sentiment"`
	CreatedAt Timestamp `json:"created_at"`
}

// NewUserMessage creates a user message stamped with the given time.
func NewUserMessage(content, language, sentiment string, at time.Time) ChatMessage {
	return ChatMessage{
		Sender:    SenderUser,
		Content:   content,
		Language:  language,
		Sentiment: sentiment,
		CreatedAt: At(at),
	}
}

// NewAssistantMessage creates an assistant message stamped with the given time.
func NewAssistantMessage(content, language, sentiment string, at time.Time) ChatMessage {
	return ChatMessage{
		Sender:    SenderAssistant,
		Content:   content,
		Language:  language,
		Sentiment: sentiment,
		CreatedAt: At(at),
	}
}

// =============================================================================
// CHAT EXCHANGE (WIRE)
// =============================================================================

// ChatRequest is the body posted to the chat-respond endpoint.
type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

// ChatReply is the server's answer to a ChatRequest. Language and sentiment
// describe the user's message; Mood is the mood derived for this turn.
type ChatReply struct {
	Reply     string    `json:"reply"`
	Language  string    `json:"language"`
	Sentiment string    `json:"sentiment"`
	Mood      Mood      `json:"mood"`
	Timestamp Timestamp `json:"timestamp"`
}
