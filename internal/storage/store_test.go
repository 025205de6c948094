// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "companion.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SetGetRemove(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.GetItem("companion_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem("companion_token", "first"))
	require.NoError(t, store.SetItem("companion_token", "second"))

	value, ok, err := store.GetItem("companion_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)

	require.NoError(t, store.RemoveItem("companion_token"))
	require.NoError(t, store.RemoveItem("companion_token"))

	_, ok, err = store.GetItem("companion_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companion.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetItem("companion_token", "kept"))
	require.NoError(t, store.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.GetItem("companion_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", value)
}

func TestStore_Keys(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SetItem("b", "2"))
	require.NoError(t, store.SetItem("a", "1"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestStore_Errors(t *testing.T) {
	store := openTestStore(t)

	assert.ErrorIs(t, store.SetItem("", "x"), ErrInvalidKey)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, _, err := store.GetItem("companion_token")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.SetItem("k", "v"), ErrClosed)

	_, err = Open("")
	assert.Error(t, err)
}
