// Package message defines the envelopes exchanged with transports.
package message

import (
	"time"

	"github.com/nadzzz/playcue/internal/playback"
)

// ResponseMode controls whether the caller wants a natural-language reply.
type ResponseMode string

const (
	// ResponseModeNone suppresses the feedback sentence.
	// Only the action or failure is returned.
	ResponseModeNone ResponseMode = "none"

	// ResponseModeText returns a feedback sentence suitable for display or speech.
	ResponseModeText ResponseMode = "text"
)

// Message represents an incoming command from any transport.
type Message struct {
	// ID is a unique identifier for this message (UUID). Assigned on receipt if empty.
	ID string `json:"id"`

	// Source identifies the sender (e.g., "kitchen-speaker", "phone-alice").
	Source string `json:"source"`

	// Text is the transcribed or typed command.
	Text string `json:"text"`

	// ReplyTo optionally overrides where pub/sub transports publish the result.
	ReplyTo string `json:"reply_to,omitempty"`

	// Instruction tells playcue how to route the resulting action.
	Instruction Instruction `json:"instruction"`

	// Timestamp is when the message was received by playcue.
	Timestamp time.Time `json:"timestamp"`
}

// Instruction describes how to route and report a message.
type Instruction struct {
	// Targets lists the executors that should receive the built action.
	// When empty, the configured default targets are used.
	// The sender always receives the result regardless of this list.
	Targets []Target `json:"targets,omitempty"`

	// ResponseMode controls the feedback sentence. Defaults to "text".
	ResponseMode ResponseMode `json:"response_mode,omitempty"`

	// DryRun interprets the command without routing the action anywhere.
	DryRun bool `json:"dry_run,omitempty"`
}

// Target defines a downstream executor that should receive actions.
type Target struct {
	// ServiceName is a human-readable identifier (e.g., "spotify-executor").
	ServiceName string `json:"service_name"`

	// Endpoint is the address to reach this target: a URL for http,
	// host:port for grpc, a topic for mqtt.
	Endpoint string `json:"endpoint"`

	// Protocol is the protocol to use ("http", "grpc", "mqtt").
	Protocol string `json:"protocol"`

	// Token is an optional bearer credential sent with the action.
	Token string `json:"-"`
}

// DispatchResult is the outcome of processing a message through the pipeline.
// Exactly one of Action and Failure is set unless Error is.
type DispatchResult struct {
	// MessageID is the ID of the incoming message.
	MessageID string `json:"message_id"`

	// Transcript echoes the command text.
	Transcript string `json:"transcript,omitempty"`

	// Action is the validated action, ready for an executor.
	Action *playback.Action `json:"action,omitempty"`

	// Failure explains why no action was produced.
	Failure *playback.Failure `json:"failure,omitempty"`

	// RoutedTo lists the targets that received the action.
	RoutedTo []string `json:"routed_to"`

	// ResponseText is the feedback sentence for the user.
	// Populated when response_mode is "text".
	ResponseText string `json:"response_text,omitempty"`

	// Error is set if the message itself could not be processed.
	Error string `json:"error,omitempty"`
}
