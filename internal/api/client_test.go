// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/companion-tui/internal/model"
)

type staticCredential string

func (s staticCredential) Credential() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, credential string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/", staticCredential(credential), nil)
}

// =============================================================================
// CALL TESTS
// =============================================================================

func TestCall_HeadersAndBody(t *testing.T) {
	var got *http.Request
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"ok":true}`))
	}, "tok-123")

	raw, err := client.Call(context.Background(), "/chat/respond", Options{
		Method: http.MethodPost,
		Body:   model.ChatRequest{Message: "Hello"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/chat/respond", got.URL.Path)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get(RequestIDHeader))
	assert.Equal(t, "Hello", body["message"])
}

func TestCall_NoCredentialNoHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}, "")

	_, err := client.Call(context.Background(), "/mood/entries", Options{})
	require.NoError(t, err)
}

func TestCall_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	raw, err := client.Call(context.Background(), "/mood/entries/4", Options{Method: http.MethodDelete})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCall_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string detail", http.StatusBadRequest, `{"detail":"Email already registered"}`, "Email already registered"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","email"],"msg":"field required"},{"msg":"too short"}]}`, "field required; too short"},
		{"no detail", http.StatusInternalServerError, `{"error":"boom"}`, MsgRequestFailed},
		{"unparseable", http.StatusBadGateway, `<html>bad gateway</html>`, "Bad Gateway"},
		{"empty body", http.StatusUnauthorized, ``, "Unauthorized"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}, "tok")

			_, err := client.Call(context.Background(), "/users/me", Options{})
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Error())
		})
	}
}

func TestCall_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer file.Close()
			data, _ := io.ReadAll(file)
			assert.Equal(t, "speech.wav", header.Filename)
			assert.Equal(t, "RIFF", string(data))
		}

		w.Write([]byte(`{"text":"hello"}`))
	}, "")

	form := NewForm().Set("model", "whisper-1").File("file", "speech.wav", []byte("RIFF"))
	var out struct {
		Text string `json:"text"`
	}
	err := client.CallJSON(context.Background(), "/v1/audio/transcriptions", Options{Method: http.MethodPost, Body: form}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Text)
}

// =============================================================================
// ENDPOINT TESTS
// =============================================================================

func TestLogin_PasswordGrant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "sam@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "hunter22", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"jwt-abc","token_type":"bearer"}`))
	}, "")

	token, err := client.Login(context.Background(), "sam@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail", `{"detail":"Incorrect email or password"}`, "Incorrect email or password"},
		{"unparseable", `nope`, MsgLoginFailed},
		{"no detail", `{}`, MsgLoginFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				io.WriteString(w, tc.body)
			}, "")

			_, err := client.Login(context.Background(), "sam@example.com", "wrong")
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestHistory_Limit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"id":1,"sender":"user","content":"hey","language":"en","sentiment":"neutral","created_at":"2024-01-01T09:00:00"}]`))
	}, "tok")

	msgs, err := client.History(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)
}

func TestMoodEntries_Range(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("start"))
		assert.False(t, r.URL.Query().Has("end"))
		w.Write([]byte(`[{"id":1,"mood":"calm","source":"chat","mood_date":"2024-03-02","created_at":"2024-03-02T10:00:00"}]`))
	}, "tok")

	start, err := model.ParseDate("2024-03-01")
	require.NoError(t, err)

	entries, err := client.MoodEntries(context.Background(), start, model.Date{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.MoodCalm, entries[0].Mood)
}

func TestCreateMoodEntry_RejectsUnknownMood(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, "tok")

	_, err := client.CreateMoodEntry(context.Background(), model.NewMoodEntry{Mood: "grumpy", Source: "manual"})
	assert.Error(t, err)
}

func TestUpdateSettings_Patch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"history_enabled":false}`, string(data))
		w.Write([]byte(`{"id":1,"email":"sam@example.com","display_name":"Sam","history_enabled":false}`))
	}, "tok")

	profile, err := client.UpdateSettings(context.Background(), model.HistorySetting(false))
	require.NoError(t, err)
	assert.False(t, profile.HistoryEnabled)
}
