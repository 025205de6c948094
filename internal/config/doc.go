// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for companion.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Companion server location and request settings
//   - UIConfig: Theme, labels and time formats
//   - VoiceConfig: Optional speech-to-text wiring
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (COMPANION_*), including ./.env
//   - ~/.companion/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Follow edits while running:
//
//	config.Watch(ctx, path, func(cfg *config.Config) { ... }, nil)
package config
