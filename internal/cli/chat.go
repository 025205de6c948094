// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for the companion CLI.
//
// Command: chat
// Short:   Chat with the companion without the full-screen UI
//
// Examples:
//   companion chat
//   companion chat --email sam@example.com
//   companion --api https://companion.example.com chat -q
//
// Interactive commands are the same slash commands the full-screen client
// accepts; see /help. Ctrl+C or Ctrl+D at the prompt exits.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/companion-tui/internal/app"
	"github.com/jeranaias/companion-tui/internal/commands"
	"github.com/jeranaias/companion-tui/internal/config"
	"github.com/jeranaias/companion-tui/internal/model"
	"github.com/jeranaias/companion-tui/internal/voice"
)

const (
	chatPrompt = "you> "

	// loginAttempts bounds the sign-in prompt loop
	loginAttempts = 3
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Controller is the part of the client line mode drives.
type Controller interface {
	commands.Actions
	Login(ctx context.Context, form app.LoginForm) error
	Restore(ctx context.Context) (bool, error)
	SendMessage(ctx context.Context, text string) (bool, error)
	ToggleVoice(ctx context.Context) (<-chan voice.Result, error)
}

// Transcript renders chat bubbles.
type Transcript interface {
	Messages() []model.ChatMessage
	Render(msg model.ChatMessage) string
}

// MoodChart draws the mood chart.
type MoodChart interface {
	View(width int) string
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI wraps liner with persistent input history.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a line editor whose history lives in the config
// directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// SetCompleter installs tab completion.
func (c *ChatCLI) SetCompleter(complete func(line string) []string) {
	c.line.SetCompleter(complete)
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line, prefilled with suggestion when it is non-empty.
// Non-empty input is added to the history.
func (c *ChatCLI) ReadInput(prompt, suggestion string) (string, error) {
	var (
		input string
		err   error
	)
	if suggestion != "" {
		input, err = c.line.PromptWithSuggestion(prompt, suggestion, -1)
	} else {
		input, err = c.line.Prompt(prompt)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// ReadField reads a line that is kept out of the history.
func (c *ChatCLI) ReadField(prompt, suggestion string) (string, error) {
	return c.line.PromptWithSuggestion(prompt, suggestion, -1)
}

// ReadPassword reads a line without echo.
func (c *ChatCLI) ReadPassword(prompt string) (string, error) {
	return c.line.PasswordPrompt(prompt)
}

// SaveHistory writes the history file, readable only by the owner.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// REPL turns input lines into controller calls and prints the results.
type REPL struct {
	ctrl       Controller
	transcript Transcript
	chart      MoodChart
	registry   *commands.Registry
	parser     *commands.Parser
	completer  *commands.Completer
	out        io.Writer
	width      int
	quiet      bool

	// interrupted returns a context cancelled on Ctrl+C while listening
	interrupted func(ctx context.Context) (context.Context, context.CancelFunc)

	// suggestion prefills the next prompt
	suggestion string
}

// NewREPL creates a REPL printing to out.
func NewREPL(ctrl Controller, t Transcript, chart MoodChart, out io.Writer) *REPL {
	registry := commands.NewRegistry()
	return &REPL{
		ctrl:       ctrl,
		transcript: t,
		chart:      chart,
		registry:   registry,
		parser:     commands.NewParser(registry),
		completer:  commands.NewCompleter(registry),
		out:        out,
		width:      DefaultTerminalWidth,
		interrupted: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// SetWidth sets the width charts are drawn at.
func (r *REPL) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// SetQuiet hides the banner and past messages.
func (r *REPL) SetQuiet(quiet bool) {
	r.quiet = quiet
}

// Complete returns whole-line completions for line.
func (r *REPL) Complete(line string) []string {
	return r.completer.Lines(line)
}

// TakeSuggestion returns and clears the text to prefill the next prompt with.
func (r *REPL) TakeSuggestion() string {
	s := r.suggestion
	r.suggestion = ""
	return s
}

// Welcome prints the banner and the loaded transcript.
func (r *REPL) Welcome() {
	if r.quiet {
		return
	}
	name := displayName(r.ctrl.Profile())
	fmt.Fprintln(r.out, TitleStyle.Render("Companion"))
	if name != "" {
		fmt.Fprintln(r.out, DimStyle.Render("Signed in as "+name+". Type /help for commands, /quit to leave."))
	}
	fmt.Fprintln(r.out)

	for _, msg := range r.transcript.Messages() {
		fmt.Fprintln(r.out, r.transcript.Render(msg))
	}
}

// Handle processes one input line. It reports whether the session is over.
func (r *REPL) Handle(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	if commands.IsCommand(input) {
		return r.command(ctx, input)
	}
	r.send(ctx, input)
	return false
}

func (r *REPL) command(ctx context.Context, input string) bool {
	result, err := r.parser.Execute(&commands.Context{Ctx: ctx, App: r.ctrl, Registry: r.registry}, input)
	if err != nil {
		DisplayError(r.out, err)
		return false
	}
	if result.Output != "" {
		fmt.Fprintln(r.out, result.Output)
	}

	switch result.Effect {
	case commands.EffectQuit, commands.EffectLogout:
		return true
	case commands.EffectVoice:
		r.listen(ctx)
	case commands.EffectShowMood:
		fmt.Fprintln(r.out, r.chart.View(r.width))
	}
	return false
}

func (r *REPL) send(ctx context.Context, text string) {
	sent, err := r.ctrl.SendMessage(ctx, text)
	if sent {
		msgs := r.transcript.Messages()
		if n := len(msgs); n > 0 && msgs[n-1].Sender.IsAssistant() {
			fmt.Fprintln(r.out, r.transcript.Render(msgs[n-1]))
		}
	}
	if err != nil {
		DisplayError(r.out, err)
	}
}

// listen records one utterance and offers the transcript as the next input.
func (r *REPL) listen(ctx context.Context) {
	results, err := r.ctrl.ToggleVoice(ctx)
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	if results == nil {
		return
	}
	fmt.Fprintln(r.out, WarningStyle.Render("Listening... press Ctrl+C to stop."))

	sig, stop := r.interrupted(ctx)
	defer stop()

	var res voice.Result
	select {
	case res = <-results:
	case <-sig.Done():
		if _, err := r.ctrl.ToggleVoice(ctx); err != nil {
			DisplayError(r.out, err)
		}
		res = <-results
	}

	switch {
	case res.Err != nil:
		DisplayError(r.out, res.Err)
	case strings.TrimSpace(res.Transcript) == "":
		fmt.Fprintln(r.out, DimStyle.Render("Nothing was heard."))
	default:
		r.suggestion = res.Transcript
		fmt.Fprintln(r.out, DimStyle.Render("Edit the transcript and press enter to send it."))
	}
}

// =============================================================================
// COMMAND HANDLER
// =============================================================================

// lineReader is the prompt surface the chat loop needs.
type lineReader interface {
	ReadInput(prompt, suggestion string) (string, error)
	ReadField(prompt, suggestion string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// HandleChatCommand runs line-mode chat until the user quits.
func HandleChatCommand(ctx context.Context, env *Env, args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	line := NewChatCLI()
	defer line.Close()

	width := GetTerminalWidth()
	env.Transcript.SetSize(width, 0)

	repl := NewREPL(env.Controller, env.Transcript, env.Chart, os.Stdout)
	repl.SetWidth(width)
	repl.SetQuiet(args.Quiet)
	line.SetCompleter(repl.Complete)

	return runChat(ctx, env.Controller, repl, line, os.Stdout, args.Email)
}

func runChat(ctx context.Context, ctrl Controller, repl *REPL, line lineReader, out io.Writer, email string) error {
	ok, err := ctrl.Restore(ctx)
	if err != nil {
		DisplayError(out, err)
	}
	if !ok {
		if err := signIn(ctx, ctrl, line, out, email); err != nil {
			if aborted(err) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
	}

	repl.Welcome()
	for {
		input, err := line.ReadInput(chatPrompt, repl.TakeSuggestion())
		if err != nil {
			if aborted(err) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		if repl.Handle(ctx, input) {
			return nil
		}
	}
}

// aborted reports whether the user left a prompt with Ctrl+C or Ctrl+D.
func aborted(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF)
}

// signIn prompts for credentials until the controller accepts them.
func signIn(ctx context.Context, ctrl Controller, line lineReader, out io.Writer, email string) error {
	fmt.Fprintln(out, TitleStyle.Render("Sign in to Companion"))

	var lastErr error
	for attempt := 0; attempt < loginAttempts; attempt++ {
		var err error
		email, err = line.ReadField("Email: ", email)
		if err != nil {
			return err
		}
		password, err := line.ReadPassword("Password: ")
		if err != nil {
			return err
		}

		email = strings.TrimSpace(email)
		if email == "" || password == "" {
			lastErr = errors.New("email and password are required")
			DisplayError(out, lastErr)
			continue
		}

		lastErr = ctrl.Login(ctx, app.LoginForm{Email: email, Password: password})
		if lastErr == nil {
			return nil
		}
		DisplayError(out, lastErr)
	}
	return lastErr
}
