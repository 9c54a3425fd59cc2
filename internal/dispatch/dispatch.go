// Package dispatch implements the command pipeline and message routing.
//
// Dispatcher turns a raw command into an Action or a Failure. Service wraps
// it for transports: it assigns message IDs, renders the feedback sentence
// and routes successful actions to executor targets. The sender always
// receives the result.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/playcue/internal/library"
	"github.com/nadzzz/playcue/internal/message"
	"github.com/nadzzz/playcue/internal/transport"
)

// Service adapts a Dispatcher to the transport.Handler contract.
type Service struct {
	dispatcher *Dispatcher
	lookup     library.Lookup
	transports map[string]transport.Transport
	targets    []message.Target // used when a message names no targets
}

// NewService creates a Service. Transports are indexed by Name and used to
// deliver actions to targets of the matching protocol.
func NewService(d *Dispatcher, lookup library.Lookup, transports []transport.Transport, defaultTargets []message.Target) *Service {
	tm := make(map[string]transport.Transport, len(transports))
	for _, t := range transports {
		tm[t.Name()] = t
	}
	return &Service{
		dispatcher: d,
		lookup:     lookup,
		transports: tm,
		targets:    defaultTargets,
	}
}

// AddTransport registers a transport for routing after construction.
// Not safe to call while messages are being handled.
func (s *Service) AddTransport(t transport.Transport) {
	s.transports[t.Name()] = t
}

// resolveResponseMode falls back to text when the caller did not choose.
func resolveResponseMode(mode message.ResponseMode) message.ResponseMode {
	switch mode {
	case message.ResponseModeNone, message.ResponseModeText:
		return mode
	default:
		return message.ResponseModeText
	}
}

// Handle processes a single message through the full pipeline.
// This function is passed as the transport.Handler to each transport.
func (s *Service) Handle(ctx context.Context, msg *message.Message) (*message.DispatchResult, error) {
	start := time.Now()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = start.UTC()
	}
	logger := slog.With("message_id", msg.ID, "source", msg.Source)

	respMode := resolveResponseMode(msg.Instruction.ResponseMode)
	logger.Info("dispatch started", "response_mode", respMode)

	result := &message.DispatchResult{
		MessageID:  msg.ID,
		Transcript: msg.Text,
		RoutedTo:   []string{},
	}

	if strings.TrimSpace(msg.Text) == "" {
		result.Error = "message has no text"
		return result, nil
	}

	res := s.dispatcher.Dispatch(ctx, msg.Text, s.lookup)
	result.Action = res.Action
	result.Failure = res.Failure
	if respMode == message.ResponseModeText {
		result.ResponseText = res.Message()
	}

	if !res.OK() {
		logger.Info("dispatch rejected",
			"kind", res.Failure.Kind,
			"error", res.Failure,
			"duration", time.Since(start))
		return result, nil
	}
	logger.Info("action built", "intent", res.Action.Intent)

	if msg.Instruction.DryRun {
		logger.Info("dispatch complete (dry run)", "duration", time.Since(start))
		return result, nil
	}

	targets := msg.Instruction.Targets
	if len(targets) == 0 {
		targets = s.targets
	}

	payload, err := json.Marshal(result)
	if err != nil {
		result.Error = fmt.Sprintf("marshalling result: %v", err)
		return result, nil
	}

	for _, target := range targets {
		t, ok := s.transports[target.Protocol]
		if !ok {
			logger.Warn("no transport for target protocol", "protocol", target.Protocol, "target", target.ServiceName)
			continue
		}

		if err := t.Send(ctx, target, payload); err != nil {
			logger.Error("failed to send to target", "target", target.ServiceName, "error", err)
			continue
		}

		result.RoutedTo = append(result.RoutedTo, target.ServiceName)
		logger.Info("routed to target", "target", target.ServiceName)
	}

	logger.Info("dispatch complete", "duration", time.Since(start), "routed_to", len(result.RoutedTo))

	// The result is always returned to the sender via the transport that received the message.
	return result, nil
}
