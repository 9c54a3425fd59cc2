// Package mqtt implements the MQTT transport for playcue.
//
// MQTT is well-suited for smart speakers and other lightweight devices.
// This transport subscribes to a configurable command topic and publishes
// each result to the message's reply_to topic, or to <reply_prefix>/<source>.
package mqtt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/message"
	"github.com/nadzzz/playcue/internal/transport"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// ErrNotConnected is returned by Send before Listen has connected.
var ErrNotConnected = errors.New("mqtt transport not connected")

// Transport implements transport.Transport over MQTT.
type Transport struct {
	cfg config.MQTTConfig

	mu     sync.RWMutex
	client paho.Client
}

// New creates a new MQTT transport.
func New(cfg config.MQTTConfig) *Transport {
	return &Transport{cfg: cfg}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "mqtt" }

// Listen connects to the MQTT broker and subscribes to the configured topic.
// Subscriptions are restored on reconnect.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	qos := byte(t.cfg.QoS)

	opts := paho.NewClientOptions().
		AddBroker(t.cfg.Broker).
		SetClientID(t.cfg.ClientID).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetConnectTimeout(connectTimeout)

	opts.SetOnConnectHandler(func(c paho.Client) {
		if err := t.subscribe(ctx, c, handler); err != nil {
			slog.Error("mqtt subscribe failed", "topic", t.cfg.Topic, "error", err)
			return
		}
		slog.Info("mqtt subscribed", "topic", t.cfg.Topic, "qos", qos)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		slog.Warn("mqtt connection lost", "error", err)
	})

	client := paho.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect to %s: timed out", t.cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", t.cfg.Broker, err)
	}

	t.mu.Lock()
	t.client = client
	t.mu.Unlock()

	slog.Info("mqtt transport listening", "broker", t.cfg.Broker, "topic", t.cfg.Topic)
	<-ctx.Done()
	slog.Info("mqtt transport shutting down")
	return t.Close()
}

// subscribe registers the command topic handler on c.
func (t *Transport) subscribe(ctx context.Context, c paho.Client, handler transport.Handler) error {
	tok := c.Subscribe(t.cfg.Topic, byte(t.cfg.QoS), func(c paho.Client, m paho.Message) {
		t.handleMessage(ctx, c, m, handler)
	})
	if !tok.WaitTimeout(connectTimeout) {
		return errors.New("timed out")
	}
	return tok.Error()
}

func (t *Transport) handleMessage(ctx context.Context, c paho.Client, m paho.Message, handler transport.Handler) {
	msg, err := decodeMessage(m.Payload())
	if err != nil {
		slog.Warn("mqtt message dropped", "topic", m.Topic(), "error", err)
		return
	}

	result, err := handler(ctx, msg)
	if err != nil {
		slog.Error("dispatch failed", "message_id", msg.ID, "error", err)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		slog.Error("marshalling result", "message_id", msg.ID, "error", err)
		return
	}

	topic := replyTopic(t.cfg.ReplyPrefix, msg)
	tok := c.Publish(topic, byte(t.cfg.QoS), false, payload)
	if !tok.WaitTimeout(publishTimeout) || tok.Error() != nil {
		slog.Error("mqtt reply failed", "topic", topic, "error", tok.Error())
		return
	}
	slog.Debug("mqtt reply published", "topic", topic, "message_id", msg.ID)
}

// decodeMessage accepts a JSON message.Message or a bare text command.
func decodeMessage(payload []byte) (*message.Message, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}

	var msg message.Message
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &msg); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return &msg, nil
	}
	msg.Text = string(trimmed)
	return &msg, nil
}

// replyTopic picks where the result for msg is published.
func replyTopic(prefix string, msg *message.Message) string {
	if msg.ReplyTo != "" {
		return msg.ReplyTo
	}
	source := msg.Source
	if source == "" {
		source = "anonymous"
	}
	// Wildcards and separators are not allowed in a published topic level.
	source = strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(source)
	return strings.TrimSuffix(prefix, "/") + "/" + source
}

// Send publishes a payload to the MQTT topic named by target.Endpoint.
func (t *Transport) Send(ctx context.Context, target message.Target, payload []byte) error {
	t.mu.RLock()
	client := t.client
	t.mu.RUnlock()
	if client == nil || !client.IsConnectionOpen() {
		return ErrNotConnected
	}

	tok := client.Publish(target.Endpoint, byte(t.cfg.QoS), false, payload)
	select {
	case <-tok.Done():
	case <-ctx.Done():
		return fmt.Errorf("mqtt send: %w", ctx.Err())
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt send: %w", err)
	}

	slog.Debug("mqtt send success", "topic", target.Endpoint, "bytes", len(payload))
	return nil
}

// Close disconnects from the MQTT broker.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		t.client.Disconnect(250)
		t.client = nil
	}
	return nil
}
