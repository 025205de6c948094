// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/logging"
	"github.com/jeranaias/companion-tui/internal/session"
	"github.com/jeranaias/companion-tui/internal/storage"
	"github.com/jeranaias/companion-tui/internal/ui/avatar"
	"github.com/jeranaias/companion-tui/internal/ui/moodchart"
	"github.com/jeranaias/companion-tui/internal/ui/styles"
	"github.com/jeranaias/companion-tui/internal/ui/transcript"
	"github.com/jeranaias/companion-tui/internal/voice"
)

// Env is a fully wired client: config, logger, credential store, server
// client, views and the controller that drives them.
type Env struct {
	Config     *config.Config
	ConfigPath string
	Logger     *zap.Logger

	Store   *storage.Store
	Session *session.Store
	Client  *api.Client
	Voice   *voice.Adapter

	Theme      *styles.Theme
	Transcript *transcript.Renderer
	Avatar     *avatar.Avatar
	Chart      *moodchart.Renderer

	Controller *app.Controller
}

// Setup loads configuration and wires every collaborator. The caller must
// Close the returned Env.
func Setup(args Args) (*Env, error) {
	path := args.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	env := &Env{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
		Store:      store,
		Session:    session.New(store),
	}

	env.Client = api.New(cfg.API.BaseURL, env.Session, logger)
	if cfg.API.TimeoutSecs > 0 {
		env.Client = env.Client.WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)
	}

	env.Voice = voice.NewAdapter(voice.NewWhisperRecognizer(cfg.Voice, logger), logger)

	env.Theme = styles.NewTheme(cfg.UI.Theme)
	env.Transcript = transcript.New(env.Theme, transcript.Options{
		AssistantName: cfg.UI.AssistantName,
		TimeFormat:    cfg.UI.TimeFormat,
		Markdown:      cfg.UI.Markdown,
	})
	env.Avatar = avatar.New()
	env.Chart = moodchart.New(cfg.UI.DateFormat)

	env.Controller = app.New(app.Deps{
		API:          env.Client,
		Session:      env.Session,
		Avatar:       env.Avatar,
		Chart:        env.Chart,
		Transcript:   env.Transcript,
		Voice:        env.Voice,
		Logger:       logger,
		HistoryLimit: cfg.API.HistoryLimit,
		Language:     cfg.API.Language,
	})

	logger.Info("client ready",
		zap.String("api", env.Client.BaseURL()),
		zap.String("config", path),
		zap.Bool("voice", cfg.VoiceEnabled()),
	)
	return env, nil
}

// Close releases the credential store and flushes the log.
func (e *Env) Close() error {
	err := e.Store.Close()
	_ = e.Logger.Sync()
	return err
}
