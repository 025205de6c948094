// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the line-mode commands of
// the companion client.
//
// # Key Types
//
//   - Command: the subcommands (tui, chat, login, logout, whoami, mood, ...)
//   - Args: parsed flags shared by all commands
//   - Env: the wired client built by Setup
//   - REPL: line-mode chat over the same slash commands as the TUI
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	env, err := cli.Setup(args)
//	defer env.Close()
//	switch cmd {
//	case cli.CmdChat:
//	    err = cli.HandleChatCommand(ctx, env, args)
//	// ... other commands
//	}
//
// Errors map to exit codes with GetExitCode.
package cli
