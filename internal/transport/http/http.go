// Package http implements the HTTP transport for playcue.
//
// This transport exposes a REST API for command dispatch, a listing of
// supported command shapes and the Swagger UI. It is best suited for web
// clients, phones and voice assistants that already speak HTTP.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nadzzz/playcue/internal/message"
	"github.com/nadzzz/playcue/internal/transport"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// maxBodyBytes bounds request bodies; commands are short sentences.
const maxBodyBytes = 64 << 10

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port     int
	commands []string
	client   *http.Client

	mu     sync.Mutex
	server *http.Server
}

// New creates a new HTTP transport on the given port. commands is served
// verbatim by GET /commands.
func New(port int, commands []string) *Transport {
	return &Transport{
		port:     port,
		commands: commands,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	t.mu.Lock()
	t.server = srv
	t.mu.Unlock()

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

func (t *Transport) routes(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	// POST /dispatch accepts a JSON message or a plain-text command.
	mux.HandleFunc("POST /dispatch", func(w http.ResponseWriter, r *http.Request) {
		t.handleDispatch(w, r, handler)
	})

	mux.HandleFunc("GET /commands", t.handleCommands)

	// Swagger UI serves the registered OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// handleDispatch processes a POST /dispatch request.
//
// @Summary     Dispatch a music command
// @Description Accepts a JSON message or a plain-text command. The command is interpreted,
// @Description names are resolved against the music library, and a successful action is
// @Description routed to the configured executor targets.
// @Tags        dispatch
// @Accept      json
// @Accept      plain
// @Produce     json
// @Param       message  body      message.Message  true  "Dispatch request (JSON). For plain text, POST the command directly with Content-Type text/plain."
// @Param       X-Playcue-Source       header  string  false  "Sender identifier (used with plain-text commands)"
// @Param       X-Playcue-Instruction  header  string  false  "JSON-encoded Instruction (used with plain-text commands)"
// @Success     200  {object}  message.DispatchResult  "Built action or classified failure"
// @Failure     400  {string}  string  "Invalid request body or headers"
// @Failure     415  {string}  string  "Unsupported content type"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /dispatch [post]
func (t *Transport) handleDispatch(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var msg message.Message
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(body).Decode(&msg); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
	case "text/plain", "":
		text, err := io.ReadAll(body)
		if err != nil {
			http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
			return
		}
		msg.Text = strings.TrimSpace(string(text))
		msg.Source = r.Header.Get("X-Playcue-Source")

		// Instruction can be passed as a JSON header.
		if instrHeader := r.Header.Get("X-Playcue-Instruction"); instrHeader != "" {
			if err := json.Unmarshal([]byte(instrHeader), &msg.Instruction); err != nil {
				http.Error(w, "invalid instruction header: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
	default:
		http.Error(w, "unsupported content type "+mediaType, http.StatusUnsupportedMediaType)
		return
	}

	result, err := handler(r.Context(), &msg)
	if err != nil {
		slog.Error("dispatch failed", "error", err)
		http.Error(w, "dispatch error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleCommands lists the supported command shapes.
//
// @Summary     List supported commands
// @Tags        dispatch
// @Produce     json
// @Success     200  {array}  string  "Example command shapes"
// @Router      /commands [get]
func (t *Transport) handleCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, t.commands)
}

// Send delivers a payload to an HTTP target via POST.
func (t *Transport) Send(ctx context.Context, target message.Target, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if target.Token != "" {
		req.Header.Set("Authorization", "Bearer "+target.Token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("http send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("http send: status %d: %s", resp.StatusCode, body)
	}

	slog.Debug("http send success", "target", target.Endpoint, "status", resp.StatusCode)
	return nil
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	t.mu.Lock()
	srv := t.server
	t.mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
