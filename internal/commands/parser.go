// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnknownCommand is returned for a slash command that is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing argument")
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing user input.
type ParseResult struct {
	// IsCommand is true if the input starts with /
	IsCommand bool

	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the raw command name (e.g., "/mood")
	CommandName string

	// Args are the parsed arguments
	Args []string
}

// =============================================================================
// PARSER
// =============================================================================

// Parser handles parsing of slash commands and their arguments.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser over registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse parses user input. IsCommand is false if the input doesn't start
// with /, in which case the input is a chat message.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return ParseResult{}
	}

	result := ParseResult{IsCommand: true}
	parts := splitCommandLine(input)
	if len(parts) == 0 {
		return result
	}
	result.CommandName = strings.ToLower(parts[0])
	result.Args = parts[1:]
	result.Command = p.registry.Get(result.CommandName)
	return result
}

// Execute parses input and runs the command it names.
func (p *Parser) Execute(ctx *Context, input string) (Result, error) {
	parsed := p.Parse(input)
	if !parsed.IsCommand {
		return Result{}, fmt.Errorf("%q is not a command", input)
	}
	if parsed.Command == nil {
		return Result{}, fmt.Errorf("%w: %s (try /help)", ErrUnknownCommand, parsed.CommandName)
	}

	cmd := parsed.Command
	for i, arg := range cmd.Args {
		if arg.Required && i >= len(parsed.Args) {
			return Result{}, fmt.Errorf("%w: %s (usage: %s)", ErrMissingArgument, arg.Name, cmd.Usage)
		}
	}
	if ctx.Registry == nil {
		ctx.Registry = p.registry
	}
	return cmd.Handler(ctx, parsed.Args)
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// splitCommandLine splits a command line into tokens, respecting single and
// double quotes.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingle, inDouble bool

	for _, char := range input {
		switch {
		case char == '\'' && !inDouble:
			inSingle = !inSingle
		case char == '"' && !inSingle:
			inDouble = !inDouble
		case unicode.IsSpace(char) && !inSingle && !inDouble:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}
