// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/session"
	"github.com/jeranaias/companion-tui/internal/voice"
)

// RegisteredMessage is shown after a successful registration.
const RegisteredMessage = "Account created! Please log in."

// RegisterForm is the registration form.
type RegisterForm struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginForm is the login form.
type LoginForm struct {
	Email    string
	Password string
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// Register creates an account. On success the caller shows
// RegisteredMessage and resets the form; the user still has to log in.
func (c *Controller) Register(ctx context.Context, form RegisterForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	_, err = c.api.Register(ctx, model.Registration{
		Email:       strings.TrimSpace(form.Email),
		Password:    form.Password,
		DisplayName: strings.TrimSpace(form.DisplayName),
	})
	if err != nil {
		c.logger.Info("registration failed", zap.Error(err))
		return err
	}
	c.logger.Info("account registered")
	return nil
}

// Login exchanges credentials for a token, stores it and bootstraps the
// dashboard. A rejected login leaves the client unauthenticated.
func (c *Controller) Login(ctx context.Context, form LoginForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	gen := c.epoch.Load()

	token, err := c.api.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		c.logger.Info("login failed", zap.Error(err))
		return err
	}
	var stored error
	if err := c.commit(gen, func() { stored = c.session.SetCredential(token) }); err != nil {
		return err
	}
	if stored != nil {
		return stored
	}
	return c.bootstrap(ctx, gen)
}

// Bootstrap loads the dashboard for the stored credential. Any failure logs
// the user out.
func (c *Controller) Bootstrap(ctx context.Context) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	return c.bootstrap(ctx, c.epoch.Load())
}

// bootstrap runs avatar init, profile fetch, view switch, history and mood
// chart, strictly in that order.
func (c *Controller) bootstrap(ctx context.Context, gen uint64) error {
	c.avatar.Init()

	profile, err := c.api.CurrentUser(ctx)
	if err != nil {
		return c.failBootstrap("profile", err)
	}
	err = c.commit(gen, func() {
		c.setProfile(profile)
		c.setState(StateDashboard)
	})
	if err != nil {
		return err
	}

	if err := c.refreshHistory(ctx, gen); err != nil {
		return c.failBootstrap("history", err)
	}
	if err := c.refreshMood(ctx, gen); err != nil {
		return c.failBootstrap("mood", err)
	}
	return nil
}

func (c *Controller) failBootstrap(step string, err error) error {
	if errors.Is(err, ErrSignedOut) {
		return err
	}
	c.logger.Warn("bootstrap failed, logging out", zap.String("step", step), zap.Error(err))
	c.logout()
	return err
}

// Restore resumes a persisted session at startup. It reports whether the
// dashboard is showing afterwards. An expired credential is discarded and
// returned as session.ErrExpired.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	done, err := c.begin()
	if err != nil {
		return false, err
	}
	defer done()
	gen := c.epoch.Load()

	ok, err := c.session.Restore()
	if err != nil {
		if errors.Is(err, session.ErrExpired) {
			c.logger.Info("stored session expired")
		}
		c.logout()
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := c.bootstrap(ctx, gen); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the session and the transcript, stops voice input and shows
// the login view. It may run while an action is waiting on the server; that
// action's result is then dropped with ErrSignedOut.
func (c *Controller) Logout() {
	c.logout()
}

func (c *Controller) logout() {
	c.viewMu.Lock()
	c.epoch.Add(1)
	if err := c.session.Clear(); err != nil {
		c.logger.Error("failed to clear stored credential", zap.Error(err))
	}
	c.mu.Lock()
	c.lastLogged = 0
	c.mu.Unlock()
	c.setState(StateUnauthenticated)
	c.transcript.Clear()
	c.viewMu.Unlock()

	if c.voice != nil {
		c.voice.Stop()
	}
}

func (c *Controller) setProfile(profile *model.Profile) {
	c.session.SetProfile(profile)
	c.transcript.SetUserName(profile.DisplayName)
}

// =============================================================================
// CHAT
// =============================================================================

// SendMessage posts text and shows the exchange. Whitespace-only text is
// ignored: sent is false and nothing happens. The caller resets its input
// when sent is true.
func (c *Controller) SendMessage(ctx context.Context, text string) (sent bool, err error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	done, err := c.begin()
	if err != nil {
		return false, err
	}
	defer done()
	gen := c.epoch.Load()

	message := norm.NFC.String(text)
	reply, err := c.api.Respond(ctx, model.ChatRequest{Message: message, Language: c.language})
	if err != nil {
		c.logger.Warn("send failed", zap.Error(err))
		return false, err
	}

	err = c.commit(gen, func() {
		c.transcript.Append(model.NewUserMessage(message, reply.Language, reply.Sentiment, c.now()))
		c.transcript.Append(model.NewAssistantMessage(reply.Reply, reply.Language, reply.Sentiment, reply.Timestamp.Time))
		c.avatar.SetMood(reply.Mood)
	})
	if err != nil {
		c.logger.Info("reply dropped after logout")
		return false, err
	}

	if err := c.refreshMood(ctx, gen); err != nil {
		return true, fmt.Errorf("message sent, but the mood chart could not be refreshed: %w", err)
	}
	return true, nil
}

// ToggleHistory changes the history preference. Disabling clears the
// transcript before the server is asked; if the server refuses, the stored
// history is shown again. Enabling reloads stored history.
func (c *Controller) ToggleHistory(ctx context.Context, enabled bool) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	gen := c.epoch.Load()

	if !enabled {
		c.transcript.Clear()
	}

	profile, err := c.api.UpdateSettings(ctx, model.HistorySetting(enabled))
	if err != nil {
		if !enabled {
			c.logger.Warn("disabling history failed, reloading transcript", zap.Error(err))
			if rerr := c.refreshHistory(ctx, gen); rerr != nil {
				c.logger.Warn("history reload failed", zap.Error(rerr))
			}
		}
		return err
	}
	if err := c.commit(gen, func() { c.setProfile(profile) }); err != nil {
		return err
	}

	if !enabled {
		return nil
	}
	return c.refreshHistory(ctx, gen)
}

// refreshHistory empties the transcript and, when history is enabled, loads
// stored messages in their original order.
func (c *Controller) refreshHistory(ctx context.Context, gen uint64) error {
	c.transcript.Clear()
	profile := c.session.Profile()
	if profile == nil || !profile.HistoryEnabled {
		return nil
	}

	msgs, err := c.api.History(ctx, c.historyLimit)
	if err != nil {
		return err
	}
	return c.commit(gen, func() { c.transcript.LoadAll(msgs) })
}

// SetDisplayName renames the user.
func (c *Controller) SetDisplayName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("display name cannot be empty")
	}

	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	gen := c.epoch.Load()

	profile, err := c.api.UpdateSettings(ctx, model.DisplayNameSetting(name))
	if err != nil {
		return err
	}
	return c.commit(gen, func() { c.setProfile(profile) })
}

// =============================================================================
// MOOD
// =============================================================================

// RefreshMood reloads the mood chart.
func (c *Controller) RefreshMood(ctx context.Context) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	return c.refreshMood(ctx, c.epoch.Load())
}

func (c *Controller) refreshMood(ctx context.Context, gen uint64) error {
	entries, err := c.api.MoodEntries(ctx, model.Date{}, model.Date{})
	if err != nil {
		return err
	}
	return c.commit(gen, func() { c.chart.Render(entries) })
}

// LogMood records a mood for day by hand, then refreshes the chart. A zero
// day means today.
func (c *Controller) LogMood(ctx context.Context, mood model.Mood, day model.Date) error {
	if !mood.IsValid() {
		return fmt.Errorf("unknown mood %q", mood)
	}
	if day.IsZero() {
		day = model.NewDate(c.now())
	}

	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	gen := c.epoch.Load()

	created, err := c.api.CreateMoodEntry(ctx, model.NewMoodEntry{Mood: mood, Source: ManualSource, Date: day})
	if err != nil {
		return err
	}
	err = c.commit(gen, func() {
		c.mu.Lock()
		c.lastLogged = created.ID
		c.mu.Unlock()
	})
	if err != nil {
		return err
	}
	return c.refreshMood(ctx, gen)
}

// UndoMood deletes the mood entry most recently logged with LogMood in this
// session, then refreshes the chart. Entries from chat are never removed.
func (c *Controller) UndoMood(ctx context.Context) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()
	gen := c.epoch.Load()

	c.mu.RLock()
	id := c.lastLogged
	c.mu.RUnlock()
	if id == 0 {
		return ErrNothingToUndo
	}

	if err := c.api.DeleteMoodEntry(ctx, id); err != nil {
		return err
	}
	err = c.commit(gen, func() {
		c.mu.Lock()
		c.lastLogged = 0
		c.mu.Unlock()
	})
	if err != nil {
		return err
	}
	c.logger.Info("mood entry removed", zap.Int64("id", id))
	return c.refreshMood(ctx, gen)
}

// =============================================================================
// VOICE
// =============================================================================

// ToggleVoice starts or stops speech input. See voice.Adapter.Toggle.
func (c *Controller) ToggleVoice(ctx context.Context) (<-chan voice.Result, error) {
	if c.voice == nil {
		return nil, voice.ErrUnsupported
	}
	return c.voice.Toggle(ctx)
}
