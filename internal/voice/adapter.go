// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrUnsupported is returned by Toggle when no recognizer is available.
var ErrUnsupported = errors.New("speech recognition not supported in this terminal")

// Recognizer captures one utterance and returns its transcript segments.
// Recognize must return promptly once ctx is cancelled.
type Recognizer interface {
	Available() bool
	Recognize(ctx context.Context) ([]string, error)
}

// Result is the outcome of one recognition. An empty Transcript with a nil
// Err means recognition ended without speech, or was stopped.
type Result struct {
	Transcript string
	Err        error
}

// State is the adapter state.
type State int

const (
	StateIdle State = iota
	StateListening
)

// String returns the state name.
func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "idle"
}

// =============================================================================
// ADAPTER
// =============================================================================

// Adapter runs at most one recognition at a time.
type Adapter struct {
	mu     sync.Mutex
	rec    Recognizer
	state  State
	cancel context.CancelFunc
	gen    uint64
	logger *zap.Logger
}

// NewAdapter wraps rec. rec may be nil, in which case Toggle always fails
// with ErrUnsupported.
func NewAdapter(rec Recognizer, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{rec: rec, logger: logger.Named("voice")}
}

// Available reports whether voice input can be used.
func (a *Adapter) Available() bool {
	return a.rec != nil && a.rec.Available()
}

// State returns the current state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Listening reports whether a recognition is running.
func (a *Adapter) Listening() bool {
	return a.State() == StateListening
}

// Toggle starts listening when idle and stops when listening.
//
// Starting returns a channel that receives one Result and is then closed.
// The adapter is back to idle before the Result is sent. Stopping cancels
// the running recognition and returns a nil channel; the channel from the
// start call then receives an empty Result.
func (a *Adapter) Toggle(ctx context.Context) (<-chan Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateListening {
		a.stopLocked()
		return nil, nil
	}

	if !a.Available() {
		return nil, ErrUnsupported
	}

	rctx, cancel := context.WithCancel(ctx)
	a.gen++
	gen := a.gen
	a.cancel = cancel
	a.state = StateListening
	a.logger.Debug("recognition started")

	results := make(chan Result, 1)
	go a.run(rctx, cancel, gen, results)
	return results, nil
}

// Stop cancels a running recognition, as Toggle does when listening. It does
// nothing when idle.
func (a *Adapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateListening {
		a.stopLocked()
	}
}

func (a *Adapter) stopLocked() {
	a.cancel()
	a.cancel = nil
	a.state = StateIdle
	a.logger.Debug("recognition stopped")
}

func (a *Adapter) run(ctx context.Context, cancel context.CancelFunc, gen uint64, results chan<- Result) {
	defer close(results)
	defer cancel()

	segments, err := a.rec.Recognize(ctx)
	stopped := ctx.Err() != nil

	a.mu.Lock()
	if a.gen == gen && a.state == StateListening {
		a.state = StateIdle
		a.cancel = nil
	}
	a.mu.Unlock()

	if stopped {
		results <- Result{}
		return
	}
	if err != nil {
		a.logger.Warn("recognition failed", zap.Error(err))
		results <- Result{Err: err}
		return
	}
	results <- Result{Transcript: strings.TrimSpace(strings.Join(segments, " "))}
}
