// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/storage"
)

func openKV(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "companion.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStore_CredentialPersists(t *testing.T) {
	kv := openKV(t)
	sess := New(kv)

	require.NoError(t, sess.SetCredential("opaque-token"))
	assert.True(t, sess.Authenticated())

	value, ok, err := kv.GetItem(CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", value)

	restored := New(kv)
	ok, err = restored.Restore()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", restored.Credential())
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	kv := openKV(t)
	sess := New(kv)
	require.NoError(t, sess.SetCredential("tok"))
	sess.SetProfile(&model.Profile{DisplayName: "Sam", Email: "sam@example.com", HistoryEnabled: true})

	require.NoError(t, sess.Clear())

	assert.Empty(t, sess.Credential())
	assert.Nil(t, sess.Profile())
	assert.Empty(t, sess.DisplayName())
	_, ok, err := kv.GetItem(CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ProfileIsCopied(t *testing.T) {
	sess := New(openKV(t))
	p := &model.Profile{DisplayName: "Sam"}
	sess.SetProfile(p)
	p.DisplayName = "changed"

	got := sess.Profile()
	assert.Equal(t, "Sam", got.DisplayName)
	got.DisplayName = "also changed"
	assert.Equal(t, "Sam", sess.DisplayName())
}

func TestStore_RestoreNothing(t *testing.T) {
	ok, err := New(openKV(t)).Restore()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RestoreExpiredJWT(t *testing.T) {
	kv := openKV(t)
	require.NoError(t, kv.SetItem(CredentialKey, signedToken(t, time.Now().Add(-time.Hour))))

	sess := New(kv)
	ok, err := sess.Restore()
	assert.ErrorIs(t, err, ErrExpired)
	assert.False(t, ok)
	assert.Empty(t, sess.Credential())

	_, stored, err := kv.GetItem(CredentialKey)
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestStore_RestoreValidJWT(t *testing.T) {
	kv := openKV(t)
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, kv.SetItem(CredentialKey, token))

	sess := New(kv)
	ok, err := sess.Restore()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, token, sess.Credential())
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got, ok := Expiry(signedToken(t, exp))
	assert.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = Expiry("not-a-jwt")
	assert.False(t, ok)
}
