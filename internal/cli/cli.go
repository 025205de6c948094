// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdMood
	CmdVersion
	CmdHelp
)

// String returns the command as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdLogin:
		return "login"
	case CmdLogout:
		return "logout"
	case CmdWhoami:
		return "whoami"
	case CmdMood:
		return "mood"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// ConfigPath overrides the config file location
	ConfigPath string
	// APIURL overrides api.base_url
	APIURL string
	// Email prefills the login prompt
	Email string
	// Verbose logs at debug level
	Verbose bool
	// Quiet suppresses banners in line mode
	Quiet bool

	// Raw holds positional arguments after the command
	Raw []string
}

const usageText = `companion - a terminal client for the Companion wellbeing chat service

Usage:
  companion [command] [flags]

Commands:
  tui                 Full-screen client (default)
  chat                Line-mode chat
  login               Sign in and store the session
  logout              Forget the stored session
  whoami              Show the signed-in account
  mood                Print the mood chart
  version             Show version information
  help                Show this help

Flags:
  --api URL           Server base URL (overrides config and COMPANION_API_URL)
  --config PATH       Config file (default: ~/.companion/config.toml)
  --email EMAIL       Email for login and chat prompts
  -v, --verbose       Debug logging
  -q, --quiet         Minimal output in chat

Chat commands:
  /history on|off     Turn stored history on or off
  /mood               Show the mood chart
  /mood log <mood>    Log calm, uplifted or concerned
  /mood undo          Remove the mood you last logged
  /name <name>        Change your display name
  /voice              Dictate a message
  /logout             Sign out
  /help               List commands
  /quit               Exit

Examples:
  companion
  companion --api https://companion.example.com chat
  companion login --email sam@example.com
  companion mood

Version: %s
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "companion version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", runtime.Version())
}

// switches are the flags that never take a value.
var switches = []string{"v", "verbose", "q", "quiet", "h", "help", "version"}

// Parse parses command-line arguments (without the program name). Flags may
// appear before or after the command.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, switches...)

	args := Args{
		ConfigPath: p.Flag("config"),
		APIURL:     p.Flag("api"),
		Email:      p.Flag("email"),
		Verbose:    p.BoolFlag("v") || p.BoolFlag("verbose"),
		Quiet:      p.BoolFlag("q") || p.BoolFlag("quiet"),
		Raw:        p.PositionalFrom(1),
	}

	for _, name := range []string{"config", "api", "email"} {
		if p.HasFlag(name) && p.Flag(name) == "" {
			return CmdHelp, args, NewUsageError(fmt.Sprintf("--%s needs a value", name))
		}
	}

	if p.BoolFlag("h") || p.BoolFlag("help") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	if p.PositionalCount() == 0 {
		return CmdTUI, args, nil
	}

	switch name := strings.ToLower(p.Positional(0)); name {
	case "tui":
		return CmdTUI, args, nil
	case "chat":
		return CmdChat, args, nil
	case "login", "signin":
		return CmdLogin, args, nil
	case "logout", "signout":
		return CmdLogout, args, nil
	case "whoami":
		return CmdWhoami, args, nil
	case "mood", "moods":
		return CmdMood, args, nil
	case "version":
		return CmdVersion, args, nil
	case "help":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, NewUsageError(fmt.Sprintf("unknown command %q", name))
	}
}
