// companion - a terminal client for the Companion wellbeing chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/companion-tui/internal/cli"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/ui/dashboard"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	}

	env, err := cli.Setup(args)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdChat:
		err = cli.HandleChatCommand(ctx, env, args)
	case cli.CmdLogin:
		err = cli.HandleLoginCommand(ctx, env, args)
	case cli.CmdLogout:
		err = cli.HandleLogoutCommand(env)
	case cli.CmdWhoami:
		err = cli.HandleWhoamiCommand(ctx, env)
	case cli.CmdMood:
		err = cli.HandleMoodCommand(ctx, env)
	default:
		err = runTUI(ctx, env)
	}

	if err != nil {
		env.Logger.Error("command failed", zap.Stringer("command", cmd), zap.Error(err))
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// runTUI starts the full-screen client and reloads its look when the config
// file changes.
func runTUI(ctx context.Context, env *cli.Env) error {
	if err := cli.RequiresTTY("start the full-screen client"); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := dashboard.New(dashboard.Options{
		App: env.Controller,
		Views: dashboard.Views{
			Transcript: env.Transcript,
			Avatar:     env.Avatar,
			Chart:      env.Chart,
		},
		Theme:     env.Theme,
		Logger:    env.Logger,
		Context:   ctx,
		VoiceHint: env.Config.VoiceEnabled(),
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	err := config.Watch(ctx, env.ConfigPath,
		func(cfg *config.Config) {
			p.Send(dashboard.ConfigChangedMsg{Config: cfg})
		},
		func(err error) {
			env.Logger.Warn("config reload failed", zap.Error(err))
		},
	)
	if err != nil {
		env.Logger.Warn("config watch unavailable", zap.Error(err))
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running companion: %w", err)
	}
	return nil
}
