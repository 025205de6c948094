// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"testing"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/session"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		switches []string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name: "positional only",
			args: []string{"chat"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(0) != "chat" {
					t.Errorf("Positional(0) = %q, want %q", p.Positional(0), "chat")
				}
			},
		},
		{
			name: "flag with value",
			args: []string{"login", "--email", "sam@example.com"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("email") != "sam@example.com" {
					t.Errorf("Flag(email) = %q", p.Flag("email"))
				}
				if p.PositionalCount() != 1 {
					t.Errorf("PositionalCount() = %d, want 1", p.PositionalCount())
				}
			},
		},
		{
			name: "flag with equals",
			args: []string{"--api=http://10.0.0.5:8000", "tui"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("api") != "http://10.0.0.5:8000" {
					t.Errorf("Flag(api) = %q", p.Flag("api"))
				}
				if p.Positional(0) != "tui" {
					t.Errorf("Positional(0) = %q, want tui", p.Positional(0))
				}
			},
		},
		{
			name:     "declared switch does not eat the next argument",
			args:     []string{"-q", "chat"},
			switches: []string{"q"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("q") {
					t.Error("BoolFlag(q) should be true")
				}
				if p.Positional(0) != "chat" {
					t.Errorf("Positional(0) = %q, want chat", p.Positional(0))
				}
			},
		},
		{
			name:     "explicit false switch",
			args:     []string{"--quiet=false"},
			switches: []string{"quiet"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("quiet") {
					t.Error("BoolFlag(quiet) should be false")
				}
				if !p.HasFlag("quiet") {
					t.Error("HasFlag(quiet) should be true")
				}
			},
		},
		{
			name: "trailing flag without value is a switch",
			args: []string{"login", "--email"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("email") != "" {
					t.Errorf("Flag(email) = %q, want empty", p.Flag("email"))
				}
				if !p.HasFlag("email") {
					t.Error("HasFlag(email) should be true")
				}
			},
		},
		{
			name: "double dash ends flags",
			args: []string{"chat", "--", "--not-a-flag"},
			validate: func(t *testing.T, p *ArgParser) {
				want := []string{"chat", "--not-a-flag"}
				if !reflect.DeepEqual(p.PositionalFrom(0), want) {
					t.Errorf("PositionalFrom(0) = %v, want %v", p.PositionalFrom(0), want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.switches...)
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_OutOfRange(t *testing.T) {
	p := NewArgParser([]string{"mood"})

	if got := p.Positional(5); got != "" {
		t.Errorf("Positional(5) = %q, want empty", got)
	}
	if got := p.Positional(-1); got != "" {
		t.Errorf("Positional(-1) = %q, want empty", got)
	}
	if got := p.PositionalFrom(3); len(got) != 0 {
		t.Errorf("PositionalFrom(3) = %v, want empty", got)
	}
	if got := p.FlagOrDefault("config", "fallback.toml"); got != "fallback.toml" {
		t.Errorf("FlagOrDefault = %q, want fallback.toml", got)
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		want    Command
		wantErr bool
		check   func(*testing.T, Args)
	}{
		{name: "no arguments starts the tui", argv: nil, want: CmdTUI},
		{name: "tui", argv: []string{"tui"}, want: CmdTUI},
		{name: "chat", argv: []string{"chat"}, want: CmdChat},
		{name: "login alias", argv: []string{"signin"}, want: CmdLogin},
		{name: "logout", argv: []string{"logout"}, want: CmdLogout},
		{name: "whoami", argv: []string{"whoami"}, want: CmdWhoami},
		{name: "mood", argv: []string{"MOOD"}, want: CmdMood},
		{name: "version command", argv: []string{"version"}, want: CmdVersion},
		{name: "version flag", argv: []string{"--version"}, want: CmdVersion},
		{name: "help flag", argv: []string{"chat", "-h"}, want: CmdHelp},
		{name: "unknown command", argv: []string{"dance"}, want: CmdHelp, wantErr: true},
		{name: "flag missing value", argv: []string{"chat", "--api"}, want: CmdHelp, wantErr: true},
		{
			name: "global flags around the command",
			argv: []string{"--api", "http://localhost:9000", "-q", "chat", "--config", "/tmp/c.toml", "-v"},
			want: CmdChat,
			check: func(t *testing.T, a Args) {
				if a.APIURL != "http://localhost:9000" {
					t.Errorf("APIURL = %q", a.APIURL)
				}
				if a.ConfigPath != "/tmp/c.toml" {
					t.Errorf("ConfigPath = %q", a.ConfigPath)
				}
				if !a.Quiet || !a.Verbose {
					t.Errorf("Quiet = %v, Verbose = %v, want both true", a.Quiet, a.Verbose)
				}
			},
		},
		{
			name: "login email",
			argv: []string{"login", "--email", "sam@example.com"},
			want: CmdLogin,
			check: func(t *testing.T, a Args) {
				if a.Email != "sam@example.com" {
					t.Errorf("Email = %q", a.Email)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := Parse(tt.argv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%v) error = %v, wantErr %v", tt.argv, err, tt.wantErr)
			}
			if cmd != tt.want {
				t.Errorf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestCommand_String(t *testing.T) {
	if CmdWhoami.String() != "whoami" {
		t.Errorf("CmdWhoami.String() = %q", CmdWhoami.String())
	}
	if Command(99).String() != "unknown" {
		t.Errorf("Command(99).String() = %q", Command(99).String())
	}
}

// =============================================================================
// EXIT CODE TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", NewUsageError("bad"), ExitUsageError},
		{"tty", &TTYRequiredError{Operation: "chat"}, ExitUsageError},
		{"config", fmt.Errorf("load config: %w", config.ValidateErrors{{Field: "api.base_url", Message: "bad"}}), ExitConfigError},
		{"not signed in", ErrNotSignedIn, ExitAuthError},
		{"expired", fmt.Errorf("restore: %w", session.ErrExpired), ExitAuthError},
		{"unauthorized", &api.Error{Status: 401, Message: "Could not validate credentials"}, ExitAuthError},
		{"server error", &api.Error{Status: 500, Message: "Request failed"}, ExitGeneralError},
		{"network", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, ExitNetworkError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
