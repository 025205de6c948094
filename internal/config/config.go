// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for companion.
//
// Configuration file locations (in order of precedence):
//   - Environment variables (COMPANION_*), including values from ./.env
//   - ~/.companion/config.toml (or the path given with --config)
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/companion-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete companion configuration.
type Config struct {
	// API server configuration
	API APIConfig `toml:"api"`

	// Storage holds the durable credential store location
	Storage StorageConfig `toml:"storage"`

	// Log configuration
	Log LogConfig `toml:"log"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Voice input configuration
	Voice VoiceConfig `toml:"voice"`
}

// APIConfig contains companion server settings.
type APIConfig struct {
	// BaseURL is the companion server root, e.g. http://localhost:8000
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds each request. 0 disables the timeout.
	TimeoutSecs int `toml:"timeout_secs"`
	// HistoryLimit is the number of messages requested from the history endpoint
	HistoryLimit int `toml:"history_limit"`
	// Language is sent with chat messages when set (empty = server detects)
	Language string `toml:"language"`
}

// StorageConfig contains local persistence settings.
type StorageConfig struct {
	// Path is the sqlite database holding the persisted credential
	Path string `toml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Path is the log file. Logs never go to the terminal.
	Path string `toml:"path"`
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `toml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept
	MaxBackups int `toml:"max_backups"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// AssistantName labels companion messages in the transcript
	AssistantName string `toml:"assistant_name"`
	// Markdown renders companion replies as markdown
	Markdown bool `toml:"markdown"`
	// TimeFormat is the Go layout for message times
	TimeFormat string `toml:"time_format"`
	// DateFormat is the Go layout for mood chart labels
	DateFormat string `toml:"date_format"`
}

// VoiceConfig contains speech-to-text settings. Voice input is available only
// when both RecordCommand and TranscribeURL are set.
type VoiceConfig struct {
	// RecordCommand captures one utterance and writes WAV audio to stdout
	RecordCommand string `toml:"record_command"`
	// TranscribeURL is the root of an OpenAI-compatible transcription server
	TranscribeURL string `toml:"transcribe_url"`
	// Model is the transcription model name
	Model string `toml:"model"`
	// Language is the BCP 47 tag of the spoken language
	Language string `toml:"language"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:8000",
			TimeoutSecs:  0,
			HistoryLimit: 50,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		UI: UIConfig{
			Theme:         "auto",
			AssistantName: "CompanionAI",
			Markdown:      true,
			TimeFormat:    "15:04:05",
			DateFormat:    "Jan 2",
		},
		Voice: VoiceConfig{
			Model:    "whisper-1",
			Language: "en-US",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the companion configuration directory path.
// COMPANION_HOME overrides the default ~/.companion.
func ConfigDir() (string, error) {
	if dir := os.Getenv("COMPANION_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".companion"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from path, or from the default location when path
// is empty. A missing file is not an error. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	loadDotEnv()
	cfg.ApplyEnvOverrides()

	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file on top of cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads ./.env into the process environment. Variables that are
// already set win, and a missing file is ignored.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

// fillDefaults fills in any missing values with defaults and resolves paths
// relative to the config directory.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	if cfg.API.HistoryLimit == 0 {
		cfg.API.HistoryLimit = defaults.API.HistoryLimit
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = defaults.Log.MaxBackups
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.AssistantName == "" {
		cfg.UI.AssistantName = defaults.UI.AssistantName
	}
	if cfg.UI.TimeFormat == "" {
		cfg.UI.TimeFormat = defaults.UI.TimeFormat
	}
	if cfg.UI.DateFormat == "" {
		cfg.UI.DateFormat = defaults.UI.DateFormat
	}

	if cfg.Voice.Model == "" {
		cfg.Voice.Model = defaults.Voice.Model
	}
	if cfg.Voice.Language == "" {
		cfg.Voice.Language = defaults.Voice.Language
	}

	if cfg.Storage.Path == "" || cfg.Log.Path == "" {
		dir, err := ConfigDir()
		if err != nil {
			return err
		}
		if cfg.Storage.Path == "" {
			cfg.Storage.Path = filepath.Join(dir, "companion.db")
		}
		if cfg.Log.Path == "" {
			cfg.Log.Path = filepath.Join(dir, "companion.log")
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# companion configuration file\n")
	buf.WriteString("# Generated by companion - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateHTTPURL(c.API.BaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: err.Error()})
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "api.timeout_secs", Message: "cannot be negative"})
	}
	if c.API.HistoryLimit < 1 {
		errs = append(errs, ValidationError{Field: "api.history_limit", Message: "must be at least 1"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.Voice.TranscribeURL != "" {
		if err := validateHTTPURL(c.Voice.TranscribeURL); err != nil {
			errs = append(errs, ValidationError{Field: "voice.transcribe_url", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL '%s': scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL '%s': missing host", raw)
	}
	return nil
}

// VoiceEnabled reports whether voice input has been configured.
func (c *Config) VoiceEnabled() bool {
	return c.Voice.RecordCommand != "" && c.Voice.TranscribeURL != ""
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - COMPANION_API_URL: overrides api.base_url
//   - COMPANION_API_TIMEOUT: overrides api.timeout_secs
//   - COMPANION_DB_PATH: overrides storage.path
//   - COMPANION_LOG_LEVEL: overrides log.level
//   - COMPANION_LOG_PATH: overrides log.path
//   - COMPANION_TRANSCRIBE_URL: overrides voice.transcribe_url
//   - COMPANION_RECORD_COMMAND: overrides voice.record_command
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("COMPANION_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("COMPANION_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("COMPANION_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("COMPANION_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("COMPANION_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("COMPANION_TRANSCRIBE_URL"); v != "" {
		c.Voice.TranscribeURL = v
	}
	if v := os.Getenv("COMPANION_RECORD_COMMAND"); v != "" {
		c.Voice.RecordCommand = v
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
