// Package interpreter turns raw command text into an intent and its arguments.
//
// Interpretation runs in three steps: the Normalizer canonicalizes the text,
// the Matcher classifies it with an ordered rule table, and Extract pulls
// typed arguments out of the remaining span. No I/O happens here.
package interpreter

import (
	"log/slog"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/playback"
)

// Interpretation is the outcome of a successful interpretation.
type Interpretation struct {
	// Normalized is the canonical form of the input.
	Normalized string `json:"normalized"`

	Intent playback.Intent    `json:"intent"`
	Span   string             `json:"span,omitempty"`
	Args   playback.Arguments `json:"args"`
}

// Interpreter bundles the normalizer and matcher. It holds no mutable state
// and is safe for concurrent use.
type Interpreter struct {
	normalizer *Normalizer
	matcher    *Matcher
}

// New creates an interpreter from config using the default rule table.
func New(cfg config.InterpreterConfig) *Interpreter {
	return &Interpreter{
		normalizer: NewNormalizer(cfg.FillerWords),
		matcher:    NewMatcher(DefaultRules()),
	}
}

// Normalize exposes the normalizer.
func (i *Interpreter) Normalize(text string) string {
	return i.normalizer.Normalize(text)
}

// Interpret normalizes, classifies and extracts arguments from text.
// The returned Interpretation is non-nil even on failure so callers can
// report how far the text got.
func (i *Interpreter) Interpret(text string) (*Interpretation, error) {
	out := &Interpretation{Intent: playback.IntentUnknown}

	out.Normalized = i.normalizer.Normalize(text)
	if out.Normalized == "" {
		return out, playback.Fail(playback.FailureUnrecognizedCommand, "Empty command")
	}

	out.Intent, out.Span = i.matcher.Match(out.Normalized)
	slog.Debug("intent matched", "normalized", out.Normalized, "intent", out.Intent, "span", out.Span)
	if out.Intent == playback.IntentUnknown {
		return out, playback.Fail(playback.FailureUnrecognizedCommand,
			"Command not recognized. Try 'play [song]', 'pause', 'skip', etc.")
	}

	args, err := Extract(out.Intent, out.Span)
	if err != nil {
		return out, err
	}
	out.Args = args
	return out, nil
}
