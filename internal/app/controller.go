// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/voice"
)

var (
	// ErrBusy is returned when an action starts while another is running.
	ErrBusy = errors.New("please wait for the current action to finish")

	// ErrSignedOut is returned by an action whose session ended while it
	// waited on the server. Its result is dropped.
	ErrSignedOut = errors.New("signed out before the server replied")

	// ErrNothingToUndo is returned by UndoMood when no mood was logged by
	// hand in this session.
	ErrNothingToUndo = errors.New("no mood logged by hand to undo")
)

// ManualSource tags mood entries logged by hand.
const ManualSource = "manual"

// =============================================================================
// STATE
// =============================================================================

// State is the view the client shows.
type State int

const (
	StateUnauthenticated State = iota
	StateDashboard
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDashboard:
		return "dashboard"
	default:
		return "unauthenticated"
	}
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Backend is the part of the server API the controller uses.
type Backend interface {
	Register(ctx context.Context, reg model.Registration) (*model.Profile, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context) (*model.Profile, error)
	UpdateSettings(ctx context.Context, settings model.Settings) (*model.Profile, error)
	History(ctx context.Context, limit int) ([]model.ChatMessage, error)
	Respond(ctx context.Context, req model.ChatRequest) (*model.ChatReply, error)
	MoodEntries(ctx context.Context, start, end model.Date) ([]model.MoodEntry, error)
	CreateMoodEntry(ctx context.Context, entry model.NewMoodEntry) (*model.MoodEntry, error)
	DeleteMoodEntry(ctx context.Context, id int64) error
}

// Session stores the credential and profile.
type Session interface {
	SetCredential(value string) error
	Credential() string
	SetProfile(profile *model.Profile)
	Profile() *model.Profile
	Clear() error
	Restore() (bool, error)
}

// Avatar shows the companion's mood.
type Avatar interface {
	Init()
	SetMood(m model.Mood)
}

// Chart plots mood entries.
type Chart interface {
	Render(entries []model.MoodEntry)
}

// Transcript shows chat bubbles.
type Transcript interface {
	Append(msg model.ChatMessage)
	Clear()
	LoadAll(msgs []model.ChatMessage)
	SetUserName(name string)
}

// Voice toggles speech input.
type Voice interface {
	Toggle(ctx context.Context) (<-chan voice.Result, error)
	Stop()
}

// Deps are the collaborators of a Controller. Voice and Logger may be nil.
type Deps struct {
	API        Backend
	Session    Session
	Avatar     Avatar
	Chart      Chart
	Transcript Transcript
	Voice      Voice
	Logger     *zap.Logger

	// HistoryLimit caps how many messages are loaded. Zero uses the server default.
	HistoryLimit int
	// Language is sent with each message when set
	Language string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives the views from user actions.
type Controller struct {
	mu    sync.RWMutex
	state State
	// lastLogged is the id of the last mood entry logged by hand, 0 if none
	lastLogged int64

	busy atomic.Bool
	// epoch changes on every logout. viewMu orders logout against commit.
	epoch  atomic.Uint64
	viewMu sync.Mutex

	api          Backend
	session      Session
	avatar       Avatar
	chart        Chart
	transcript   Transcript
	voice        Voice
	logger       *zap.Logger
	historyLimit int
	language     string

	// now is replaceable in tests
	now func() time.Time
}

// New creates a controller in the unauthenticated state.
func New(d Deps) *Controller {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:          d.API,
		session:      d.Session,
		avatar:       d.Avatar,
		chart:        d.Chart,
		transcript:   d.Transcript,
		voice:        d.Voice,
		logger:       logger.Named("app"),
		historyLimit: d.HistoryLimit,
		language:     d.Language,
		now:          time.Now,
	}
}

// State returns the current view.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	c.mu.Unlock()
	if prev != s {
		c.logger.Info("view changed", zap.Stringer("from", prev), zap.Stringer("to", s))
	}
}

// Profile returns the signed-in user's profile, or nil.
func (c *Controller) Profile() *model.Profile {
	return c.session.Profile()
}

// Busy reports whether an action is running.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// begin claims the action slot. The returned func releases it.
func (c *Controller) begin() (func(), error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return func() { c.busy.Store(false) }, nil
}

// commit runs fn unless a logout happened since gen was read, in which case
// it returns ErrSignedOut. A logout waits for a running commit.
func (c *Controller) commit(gen uint64, fn func()) error {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()
	if c.epoch.Load() != gen {
		return ErrSignedOut
	}
	fn()
	return nil
}

// Message returns the text to show for an action error. Server errors show
// the server's message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
