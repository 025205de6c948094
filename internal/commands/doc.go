// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system shared by the TUI and
// the chat REPL.
//
// Input that starts with "/" is a command; anything else is a chat message.
// Handlers run synchronously against an Actions implementation and return a
// Result whose Effect tells the front end what else to do (quit, show the
// login view, start voice input, show the mood chart).
//
// # Key Types
//
//   - Registry: Command registry with all available commands
//   - Parser: Parses input and executes the named command
//   - Completer: Tab completion for commands and arguments
//
// # Built-in Commands
//
//   - /help: Show available commands
//   - /history [on|off]: Show or change the history preference
//   - /mood [log <mood> [date] | undo]: Show the chart, log a mood or undo it
//   - /name <display name>: Rename the user
//   - /voice: Toggle voice input
//   - /logout: Sign out
//   - /quit: Exit
//
// # Usage
//
//	parser := commands.NewParser(commands.NewRegistry())
//	res, err := parser.Execute(&commands.Context{Ctx: ctx, App: controller}, "/history off")
//
// Get completions:
//
//	lines := commands.NewCompleter(registry).Lines("/hi")
//	// Returns ["/history"]
package commands
