// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/companion-tui/internal/model"
)

// =============================================================================
// EXECUTION CONTEXT
// =============================================================================

// Actions is the part of the client that commands drive.
type Actions interface {
	Profile() *model.Profile
	ToggleHistory(ctx context.Context, enabled bool) error
	RefreshMood(ctx context.Context) error
	LogMood(ctx context.Context, mood model.Mood, day model.Date) error
	UndoMood(ctx context.Context) error
	SetDisplayName(ctx context.Context, name string) error
	Logout()
}

// Context carries what a handler needs.
type Context struct {
	Ctx      context.Context
	App      Actions
	Registry *Registry
}

// Effect tells the front end what to do after a command ran.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
	EffectLogout
	EffectVoice
	EffectShowMood
)

// Result is the outcome of a command.
type Result struct {
	// Output is text to show the user, may be empty
	Output string
	Effect Effect
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelp(ctx *Context, args []string) (Result, error) {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range ctx.Registry.All() {
		if cmd.Hidden {
			continue
		}
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		fmt.Fprintf(&b, "  %-34s %s\n", usage, cmd.Description)
	}
	b.WriteString("Anything else is sent to your companion.")
	return Result{Output: b.String()}, nil
}

func handleQuit(ctx *Context, args []string) (Result, error) {
	return Result{Effect: EffectQuit}, nil
}

func handleHistory(ctx *Context, args []string) (Result, error) {
	if len(args) == 0 {
		profile := ctx.App.Profile()
		if profile == nil {
			return Result{}, fmt.Errorf("not signed in")
		}
		return Result{Output: "History is " + onOff(profile.HistoryEnabled) + "."}, nil
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "enable":
		enabled = true
	case "off", "false", "disable":
		enabled = false
	default:
		return Result{}, fmt.Errorf("expected on or off, got %q", args[0])
	}

	if err := ctx.App.ToggleHistory(ctx.Ctx, enabled); err != nil {
		return Result{}, err
	}
	if enabled {
		return Result{Output: "History enabled."}, nil
	}
	return Result{Output: "History disabled. Past messages are hidden."}, nil
}

func handleMood(ctx *Context, args []string) (Result, error) {
	if len(args) == 0 {
		if err := ctx.App.RefreshMood(ctx.Ctx); err != nil {
			return Result{}, err
		}
		return Result{Effect: EffectShowMood}, nil
	}

	switch strings.ToLower(args[0]) {
	case "log":
	case "undo":
		if err := ctx.App.UndoMood(ctx.Ctx); err != nil {
			return Result{}, err
		}
		return Result{Output: "Removed the last mood you logged.", Effect: EffectShowMood}, nil
	default:
		return Result{}, fmt.Errorf("unknown mood action %q (usage: %s)", args[0], moodUsage)
	}
	if len(args) < 2 {
		return Result{}, fmt.Errorf("%w: mood (usage: /mood log <mood> [YYYY-MM-DD])", ErrMissingArgument)
	}

	mood, err := model.ParseMood(args[1])
	if err != nil {
		return Result{}, err
	}

	var day model.Date
	when := "today"
	if len(args) > 2 {
		day, err = model.ParseDate(args[2])
		if err != nil {
			return Result{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[2])
		}
		when = day.String()
	}

	if err := ctx.App.LogMood(ctx.Ctx, mood, day); err != nil {
		return Result{}, err
	}
	return Result{
		Output: fmt.Sprintf("Logged %s for %s.", mood.Label(), when),
		Effect: EffectShowMood,
	}, nil
}

func handleName(ctx *Context, args []string) (Result, error) {
	name := strings.Join(args, " ")
	if err := ctx.App.SetDisplayName(ctx.Ctx, name); err != nil {
		return Result{}, err
	}
	return Result{Output: "Display name set to " + strings.TrimSpace(name) + "."}, nil
}

func handleVoice(ctx *Context, args []string) (Result, error) {
	return Result{Effect: EffectVoice}, nil
}

func handleLogout(ctx *Context, args []string) (Result, error) {
	ctx.App.Logout()
	return Result{Output: "Signed out.", Effect: EffectLogout}, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
