// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/companion-tui/internal/app"
)

// =============================================================================
// AUTH FORM
// =============================================================================

// formMode selects which form the auth view shows.
type formMode int

const (
	formLogin formMode = iota
	formRegister
)

const (
	fieldEmail = iota
	fieldPassword
	fieldDisplayName
)

// authForm holds the login and registration fields. Login uses the first two.
type authForm struct {
	mode   formMode
	fields []textinput.Model
	focus  int
}

func newAuthForm() authForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Prompt = ""

	name := textinput.New()
	name.Placeholder = "what should your companion call you?"
	name.CharLimit = 64
	name.Prompt = ""

	f := authForm{fields: []textinput.Model{email, password, name}}
	f.fields[fieldEmail].Focus()
	return f
}

// count is the number of fields the current mode shows.
func (f *authForm) count() int {
	if f.mode == formRegister {
		return 3
	}
	return 2
}

func (f *authForm) setFocus(i int) tea.Cmd {
	n := f.count()
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.fields {
		if j == f.focus {
			cmd = f.fields[j].Focus()
		} else {
			f.fields[j].Blur()
		}
	}
	return cmd
}

func (f *authForm) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *authForm) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// setMode switches forms and focuses the first field.
func (f *authForm) setMode(mode formMode) tea.Cmd {
	f.mode = mode
	return f.setFocus(fieldEmail)
}

func (f *authForm) toggleMode() tea.Cmd {
	if f.mode == formLogin {
		return f.setMode(formRegister)
	}
	return f.setMode(formLogin)
}

// reset empties every field.
func (f *authForm) reset() {
	for i := range f.fields {
		f.fields[i].Reset()
	}
}

func (f *authForm) title() string {
	if f.mode == formRegister {
		return "Create account"
	}
	return "Sign in"
}

func (f *authForm) loginForm() app.LoginForm {
	return app.LoginForm{
		Email:    f.fields[fieldEmail].Value(),
		Password: f.fields[fieldPassword].Value(),
	}
}

func (f *authForm) registerForm() app.RegisterForm {
	return app.RegisterForm{
		Email:       f.fields[fieldEmail].Value(),
		Password:    f.fields[fieldPassword].Value(),
		DisplayName: f.fields[fieldDisplayName].Value(),
	}
}

// update forwards a message to the focused field.
func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}
