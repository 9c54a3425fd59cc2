package playback

import (
	"fmt"
	"strings"
)

// FailureKind classifies why a command produced no Action.
type FailureKind string

const (
	FailureUnrecognizedCommand FailureKind = "unrecognized_command"
	FailureNotANumber          FailureKind = "not_a_number"
	FailureInvalidEnumValue    FailureKind = "invalid_enum_value"
	FailureMissingSeparator    FailureKind = "missing_separator"
	FailureEmptyName           FailureKind = "empty_name"
	FailureNotFound            FailureKind = "not_found"
	FailureAmbiguous           FailureKind = "ambiguous"
	FailureOutOfRange          FailureKind = "out_of_range"
	FailureLookupUnavailable   FailureKind = "lookup_unavailable"
)

// Failure is a classified, user-presentable pipeline error.
// Message is safe to show or speak; the wrapped cause is for logs only.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`

	// Alternatives lists the close candidates of an Ambiguous failure.
	Alternatives []Candidate `json:"alternatives,omitempty"`

	cause error
}

// Fail creates a Failure with the given kind and message.
func Fail(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Ambiguous creates an Ambiguous failure whose message lists the alternatives.
func Ambiguous(alternatives []Candidate) *Failure {
	names := make([]string, len(alternatives))
	for i, c := range alternatives {
		names[i] = c.DisplayName
	}
	return &Failure{
		Kind:         FailureAmbiguous,
		Message:      "Did you mean: " + strings.Join(names, ", ") + "?",
		Alternatives: alternatives,
	}
}

// WithCause attaches an underlying error kept out of Message.
func (f *Failure) WithCause(err error) *Failure {
	f.cause = err
	return f
}

func (f *Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error { return f.cause }

// Result is the outcome of dispatching one command.
// Exactly one of Action and Failure is set.
type Result struct {
	Action  *Action  `json:"action,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// OK reports whether the result carries an Action.
func (r Result) OK() bool { return r.Action != nil }

// Message returns the user-facing feedback for the result.
func (r Result) Message() string {
	if r.Failure != nil {
		return r.Failure.Message
	}
	if r.Action != nil {
		return r.Action.Summary()
	}
	return ""
}
