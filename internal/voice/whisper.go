// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jeranaias/companion-tui/internal/api"
	"github.com/jeranaias/companion-tui/internal/config"
)

// TranscriptionPath is the OpenAI-compatible transcription endpoint.
const TranscriptionPath = "/v1/audio/transcriptions"

// WhisperRecognizer records one utterance with an external command, such as
// "arecord -q -f cd -t wav -d 6 -", and sends the WAV audio to a Whisper
// compatible server.
type WhisperRecognizer struct {
	command  []string
	client   *api.Client
	model    string
	language string
	logger   *zap.Logger
}

// NewWhisperRecognizer builds a recognizer from config. It is unavailable
// unless both the record command and the transcription URL are set.
func NewWhisperRecognizer(cfg config.VoiceConfig, logger *zap.Logger) *WhisperRecognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &WhisperRecognizer{
		command:  strings.Fields(cfg.RecordCommand),
		model:    cfg.Model,
		language: whisperLanguage(cfg.Language),
		logger:   logger.Named("whisper"),
	}
	if cfg.TranscribeURL != "" {
		w.client = api.New(cfg.TranscribeURL, nil, logger)
	}
	return w
}

// Available reports whether the record command exists and a server is set.
func (w *WhisperRecognizer) Available() bool {
	if len(w.command) == 0 || w.client == nil {
		return false
	}
	_, err := exec.LookPath(w.command[0])
	return err == nil
}

// Recognize records, then transcribes. Silence yields no segments.
func (w *WhisperRecognizer) Recognize(ctx context.Context) ([]string, error) {
	audio, err := w.record(ctx)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, nil
	}

	form := api.NewForm().
		Set("model", w.model).
		File("file", "speech.wav", audio)
	if w.language != "" {
		form.Set("language", w.language)
	}

	var out struct {
		Text string `json:"text"`
	}
	opts := api.Options{Method: http.MethodPost, Body: form}
	if err := w.client.CallJSON(ctx, TranscriptionPath, opts, &out); err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}

func (w *WhisperRecognizer) record(ctx context.Context) ([]byte, error) {
	if len(w.command) == 0 {
		return nil, ErrUnsupported
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, w.command[0], w.command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		w.logger.Warn("record command failed", zap.String("stderr", strings.TrimSpace(stderr.String())))
		return nil, fmt.Errorf("record command failed: %w", err)
	}
	return stdout.Bytes(), nil
}

// whisperLanguage reduces a BCP 47 tag to the ISO 639-1 code Whisper expects.
func whisperLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, _ := t.Base()
	return base.String()
}
