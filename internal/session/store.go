// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/companion-tui/internal/model"
)

// CredentialKey is the storage key of the persisted credential.
const CredentialKey = "companion_token"

// ErrExpired is returned by Restore when the persisted credential is a JWT
// whose expiry has passed. The credential is discarded.
var ErrExpired = errors.New("stored session has expired")

// KV is durable string storage.
type KV interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store tracks the credential and the current user's profile.
type Store struct {
	mu         sync.RWMutex
	kv         KV
	credential string
	profile    *model.Profile

	// now is replaceable in tests
	now func() time.Time
}

// New creates an empty session backed by kv.
func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Credential returns the bearer credential, or "" when signed out.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	return s.Credential() != ""
}

// SetCredential stores value in memory and persists it. An empty value
// removes the persisted credential.
func (s *Store) SetCredential(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = value
	if value == "" {
		if err := s.kv.RemoveItem(CredentialKey); err != nil {
			return fmt.Errorf("failed to remove credential: %w", err)
		}
		return nil
	}
	if err := s.kv.SetItem(CredentialKey, value); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	return nil
}

// Profile returns a copy of the current profile, or nil.
func (s *Store) Profile() *model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// SetProfile replaces the current profile. nil clears it.
func (s *Store) SetProfile(profile *model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile == nil {
		s.profile = nil
		return
	}
	p := *profile
	s.profile = &p
}

// DisplayName returns the profile's display name, or "" when unknown.
func (s *Store) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.DisplayName
}

// Clear forgets the credential and profile.
func (s *Store) Clear() error {
	s.SetProfile(nil)
	return s.SetCredential("")
}

// Restore loads the persisted credential. It reports whether a usable
// credential was found. Expired JWTs are removed and ErrExpired is returned.
func (s *Store) Restore() (bool, error) {
	value, ok, err := s.kv.GetItem(CredentialKey)
	if err != nil {
		return false, fmt.Errorf("failed to read credential: %w", err)
	}
	if !ok || value == "" {
		return false, nil
	}

	if exp, ok := Expiry(value); ok && !exp.After(s.now()) {
		if err := s.SetCredential(""); err != nil {
			return false, err
		}
		return false, ErrExpired
	}

	s.mu.Lock()
	s.credential = value
	s.mu.Unlock()
	return true, nil
}

// Expiry reads the exp claim of a JWT without verifying its signature. ok is
// false for opaque credentials and tokens without exp.
func Expiry(credential string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
