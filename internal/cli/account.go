// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// account.go - Session commands for the companion CLI.
//
// Commands:
//   companion login [--email E]   Sign in; the password is read without echo
//   companion logout              Forget the stored session
//   companion whoami              Show the signed-in account
//   companion mood                Print the mood chart

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/model"
)

// =============================================================================
// LOGIN
// =============================================================================

// HandleLoginCommand signs in interactively and stores the session.
func HandleLoginCommand(ctx context.Context, env *Env, args Args) error {
	if err := RequiresTTY("sign in"); err != nil {
		return err
	}

	email := strings.TrimSpace(args.Email)
	if email == "" {
		fmt.Fprint(os.Stdout, "Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	password, err := readPassword(os.Stdout, "Password: ")
	if err != nil {
		return err
	}

	return login(ctx, env.Controller, os.Stdout, email, password)
}

func login(ctx context.Context, ctrl Controller, out io.Writer, email, password string) error {
	if email == "" || password == "" {
		return NewUsageError("email and password are required")
	}
	if err := ctrl.Login(ctx, app.LoginForm{Email: email, Password: password}); err != nil {
		return err
	}
	fmt.Fprintln(out, SuccessStyle.Render("Signed in as "+displayName(ctrl.Profile())+"."))
	return nil
}

// =============================================================================
// LOGOUT
// =============================================================================

// Credentialed reports whether a session credential is stored.
type Credentialed interface {
	Authenticated() bool
}

// HandleLogoutCommand forgets the stored session.
func HandleLogoutCommand(env *Env) error {
	return logout(env.Controller, env.Session, os.Stdout)
}

func logout(ctrl Controller, sess Credentialed, out io.Writer) error {
	if !sess.Authenticated() {
		fmt.Fprintln(out, DimStyle.Render("Not signed in."))
		return nil
	}
	ctrl.Logout()
	fmt.Fprintln(out, SuccessStyle.Render("Signed out."))
	return nil
}

// =============================================================================
// WHOAMI
// =============================================================================

// HandleWhoamiCommand prints the signed-in account.
func HandleWhoamiCommand(ctx context.Context, env *Env) error {
	return whoami(ctx, env.Controller, os.Stdout, env.Client.BaseURL())
}

func whoami(ctx context.Context, ctrl Controller, out io.Writer, server string) error {
	if err := restore(ctx, ctrl); err != nil {
		return err
	}
	p := ctrl.Profile()

	fmt.Fprintln(out, TitleStyle.Render(displayName(p)))
	fmt.Fprintln(out, field("Email", p.Email))
	fmt.Fprintln(out, field("History", onOff(p.HistoryEnabled)))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintln(out, field("Member since", p.CreatedAt.Local().Format("Jan 2, 2006")))
	}
	fmt.Fprintln(out, field("Server", server))
	return nil
}

// =============================================================================
// MOOD
// =============================================================================

// HandleMoodCommand prints the mood chart.
func HandleMoodCommand(ctx context.Context, env *Env) error {
	return mood(ctx, env.Controller, env.Chart, os.Stdout, GetTerminalWidth())
}

func mood(ctx context.Context, ctrl Controller, chart MoodChart, out io.Writer, width int) error {
	if err := restore(ctx, ctrl); err != nil {
		return err
	}
	fmt.Fprintln(out, TitleStyle.Render("Mood"))
	fmt.Fprintln(out, chart.View(width))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// restore resumes the stored session or returns ErrNotSignedIn.
func restore(ctx context.Context, ctrl Controller) error {
	ok, err := ctrl.Restore(ctx)
	if err != nil {
		return err
	}
	if !ok || ctrl.Profile() == nil {
		return ErrNotSignedIn
	}
	return nil
}

func displayName(p *model.Profile) string {
	if p == nil {
		return ""
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
