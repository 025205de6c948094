// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits command-line arguments into flags and positionals.
// It accepts the usual flag forms:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Switches: --flag (no value)
//
// A lone "--" ends flag parsing; everything after it is positional.
type ArgParser struct {
	flags      map[string]string
	switches   map[string]bool
	positional []string
	raw        []string
}

// NewArgParser parses raw. Names listed in switches never take a value, so
// "--quiet chat" reads as a switch followed by a positional.
//
// Example:
//
//	args := NewArgParser([]string{"login", "--email", "sam@example.com", "-q"}, "q", "quiet")
//	args.Positional(0)   // "login"
//	args.Flag("email")   // "sam@example.com"
//	args.BoolFlag("q")   // true
func NewArgParser(raw []string, switches ...string) *ArgParser {
	isSwitch := make(map[string]bool, len(switches))
	for _, name := range switches {
		isSwitch[name] = true
	}

	p := &ArgParser{
		flags:    make(map[string]string),
		switches: make(map[string]bool),
		raw:      raw,
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if key, value, ok := strings.Cut(name, "="); ok {
			if isSwitch[key] {
				p.switches[key] = value != "false" && value != "0"
			} else {
				p.flags[key] = value
			}
			continue
		}

		if !isSwitch[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.flags[name] = raw[i+1]
			i++
			continue
		}
		p.switches[name] = true
	}

	return p
}

// Flag returns the value of a flag, or "" when it was not given.
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value or defaultValue when it is unset.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// BoolFlag reports whether a switch was given.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.switches[strings.TrimLeft(name, "-")]
}

// HasFlag reports whether the flag was given in either form.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasValue := p.flags[name]
	_, hasSwitch := p.switches[name]
	return hasValue || hasSwitch
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments from index on.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Raw returns the arguments as given.
func (p *ArgParser) Raw() []string {
	return p.raw
}
