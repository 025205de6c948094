// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/session"
	"github.com/jeranaias/companion-tui/internal/storage"
	"github.com/jeranaias/companion-tui/internal/ui/avatar"
	"github.com/jeranaias/companion-tui/internal/ui/moodchart"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
	"github.com/jeranaias/companion-tui/internal/ui/transcript"
)

const fixtureToken = "fixture-token"

// fixtureServer fakes the companion server with in-memory state.
type fixtureServer struct {
	mu             sync.Mutex
	historyEnabled bool
	history        []map[string]any
	moods          []map[string]any
	calls          map[string]int
	failProfile    bool
	failPatch      bool
	onPatch        func()
	respondGate    chan struct{}
	respondHit     chan struct{}
	lastMessage    string
}

func newFixture() *fixtureServer {
	return &fixtureServer{
		historyEnabled: true,
		history: []map[string]any{
			{"id": 1, "sender": "ai", "content": "Welcome back", "language": "en", "sentiment": "neutral", "created_at": "2024-05-01T09:00:00"},
		},
		moods: []map[string]any{
			{"id": 2, "mood": "uplifted", "source": "chat", "mood_date": "2024-05-02", "created_at": "2024-05-02T09:00:00"},
			{"id": 1, "mood": "calm", "source": "chat", "mood_date": "2024-05-01", "created_at": "2024-05-01T09:00:00"},
		},
		calls: map[string]int{},
	}
}

// configure changes fixture state while requests may be in flight.
func (f *fixtureServer) configure(fn func(f *fixtureServer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fixtureServer) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (f *fixtureServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[key]++
	onPatch, gate, hit := f.onPatch, f.respondGate, f.respondHit
	f.mu.Unlock()

	if key == "POST /auth/login" {
		r.ParseForm()
		if r.PostForm.Get("password") != "correct horse" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": fixtureToken, "token_type": "bearer"})
		return
	}
	if key == "POST /auth/register" {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "taken@example.com" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": 9, "email": body["email"], "display_name": body["display_name"], "history_enabled": true})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+fixtureToken {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
		return
	}

	switch key {
	case "GET /users/me":
		f.mu.Lock()
		fail := f.failProfile
		f.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Database unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, f.profile())

	case "PATCH /users/me":
		f.mu.Lock()
		failPatch := f.failPatch
		f.mu.Unlock()
		if failPatch {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Database unavailable"})
			return
		}
		if onPatch != nil {
			onPatch()
		}
		var body struct {
			HistoryEnabled *bool `json:"history_enabled"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		if body.HistoryEnabled != nil {
			f.historyEnabled = *body.HistoryEnabled
		}
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.profile())

	case "GET /chat/history":
		f.mu.Lock()
		history := f.history
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, history)

	case "GET /mood/entries":
		f.mu.Lock()
		moods := f.moods
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, moods)

	case "POST /mood/entries":
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		body["id"] = len(f.moods) + 1
		f.moods = append(f.moods, body)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, body)

	case "POST /chat/respond":
		if hit != nil {
			hit <- struct{}{}
		}
		if gate != nil {
			<-gate
		}
		data, _ := io.ReadAll(r.Body)
		var body map[string]string
		json.Unmarshal(data, &body)
		f.mu.Lock()
		f.lastMessage = body["message"]
		f.moods = append(f.moods, map[string]any{"id": len(f.moods) + 1, "mood": "uplifted", "source": "chat", "mood_date": "2024-05-03"})
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{
			"reply":     "Hi there",
			"language":  "en",
			"sentiment": "positive",
			"mood":      "uplifted",
			"timestamp": "2024-05-03T10:00:00",
		})

	default:
		if id, ok := strings.CutPrefix(key, "DELETE /mood/entries/"); ok && f.deleteMood(id) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (f *fixtureServer) deleteMood(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.moods {
		if fmt.Sprint(m["id"]) == id {
			f.moods = append(f.moods[:i:i], f.moods[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fixtureServer) profile() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return map[string]any{
		"id":              1,
		"email":           "sam@example.com",
		"display_name":    "Sam",
		"history_enabled": f.historyEnabled,
		"created_at":      "2024-01-01T00:00:00",
	}
}

// harness wires a controller to real renderers, sqlite storage and the fixture.
type harness struct {
	ctrl       *Controller
	client     *api.Client
	fixture    *fixtureServer
	kv         *storage.Store
	session    *session.Store
	avatar     *avatar.Avatar
	chart      *moodchart.Renderer
	transcript *transcript.Renderer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fixture := newFixture()
	server := httptest.NewServer(fixture)
	t.Cleanup(server.Close)

	kv, err := storage.Open(filepath.Join(t.TempDir(), "companion.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	h := &harness{
		fixture:    fixture,
		kv:         kv,
		session:    session.New(kv),
		avatar:     avatar.New(),
		chart:      moodchart.New("2006-01-02"),
		transcript: transcript.New(styles.NewTheme("dark"), transcript.Options{}),
	}
	h.client = api.New(server.URL, h.session, nil)
	h.withVoice(nil)
	return h
}

// withVoice rebuilds the controller with v as its voice input.
func (h *harness) withVoice(v Voice) {
	h.ctrl = New(Deps{
		API:        h.client,
		Session:    h.session,
		Avatar:     h.avatar,
		Chart:      h.chart,
		Transcript: h.transcript,
		Voice:      v,
	})
}
