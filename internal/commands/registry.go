// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/history [on|off]")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler runs the command
	Handler func(ctx *Context, args []string) (Result, error)

	// Hidden commands don't appear in help
	Hidden bool
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	Name     string
	Required bool
	Type     ArgType
	// Values for enum types
	Values []string
}

// ArgType indicates what kind of completion to provide.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypeEnum                  // One of Values
	ArgTypeMood                  // A mood name
	ArgTypeDate                  // YYYY-MM-DD
)

const moodUsage = "/mood [log <mood> [YYYY-MM-DD] | undo]"

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit companion",
		Handler:     handleQuit,
	})

	r.Register(&Command{
		Name:        "/history",
		Description: "Show or change whether chat history is kept",
		Usage:       "/history [on|off]",
		Args: []ArgDef{
			{Name: "state", Type: ArgTypeEnum, Values: []string{"on", "off"}},
		},
		Handler: handleHistory,
	})

	r.Register(&Command{
		Name:        "/mood",
		Description: "Show the mood chart, log a mood by hand or undo the last one",
		Usage:       moodUsage,
		Args: []ArgDef{
			{Name: "action", Type: ArgTypeEnum, Values: []string{"log", "undo"}},
			{Name: "mood", Type: ArgTypeMood},
			{Name: "date", Type: ArgTypeDate},
		},
		Handler: handleMood,
	})

	r.Register(&Command{
		Name:        "/name",
		Description: "Change your display name",
		Usage:       "/name <display name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeString},
		},
		Handler: handleName,
	})

	r.Register(&Command{
		Name:        "/voice",
		Aliases:     []string{"/v"},
		Description: "Start or stop voice input",
		Handler:     handleVoice,
	})

	r.Register(&Command{
		Name:        "/logout",
		Description: "Sign out and forget the stored session",
		Handler:     handleLogout,
	})
}
