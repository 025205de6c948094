// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Fallback messages when the server gives no detail.
const (
	MsgRequestFailed = "Request failed"
	MsgLoginFailed   = "Login failed"
)

// Error is a non-2xx response from the server.
type Error struct {
	// Status is the HTTP status code
	Status int
	// Message is the server's detail, or a fallback
	Message string
}

// Error implements the error interface. The message is shown to users as is.
func (e *Error) Error() string {
	return e.Message
}

// Unauthorized reports whether the server rejected the credential.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// errorBody is the error envelope the server uses. Detail is either a string
// or a list of validation problems.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationProblem struct {
	Msg string `json:"msg"`
}

// newError builds an *Error from a failed response body. An unparseable body
// yields the status text; a parsed body without detail yields fallback.
func newError(status int, body []byte, fallback string) *Error {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		msg := http.StatusText(status)
		if msg == "" {
			msg = fallback
		}
		return &Error{Status: status, Message: msg}
	}

	msg := detailMessage(envelope.Detail)
	if msg == "" {
		msg = fallback
	}
	return &Error{Status: status, Message: msg}
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var problems []validationProblem
	if err := json.Unmarshal(raw, &problems); err == nil {
		msgs := make([]string, 0, len(problems))
		for _, p := range problems {
			if p.Msg != "" {
				msgs = append(msgs, p.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
