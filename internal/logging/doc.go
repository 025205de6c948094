// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the structured logger used across companion.
//
// Logs are JSON lines written to a size-rotated file. The terminal belongs to
// the UI, so nothing is ever written to stdout or stderr.
//
// # Usage
//
//	logger, err := logging.New(cfg.Log)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
// Tests use logging.Nop().
package logging
