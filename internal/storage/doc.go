// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable local key/value storage for companion.
//
// Values are kept in a small SQLite database so they survive restarts. The
// only key the client writes today is the session credential.
//
// # Key Types
//
//   - Store: String key/value store backed by SQLite
//
// # Usage
//
//	store, err := storage.Open(cfg.Storage.Path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.SetItem(session.CredentialKey, token)
//	token, ok, err := store.GetItem(session.CredentialKey)
//
// # Storage Location
//
// The database lives at ~/.companion/companion.db unless storage.path says
// otherwise.
package storage
