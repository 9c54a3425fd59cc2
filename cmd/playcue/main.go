// Playcue is a music command daemon that turns short natural-language
// commands into validated playback actions and routes them to executors.
//
// Usage:
//
//	playcue [flags]
//	playcue --config /path/to/playcue.yaml
//
// @title       playcue API
// @version     0.1.0
// @description Natural-language music command interpretation and dispatch.
// @BasePath    /
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"golang.org/x/sync/errgroup"

	_ "github.com/nadzzz/playcue/docs"
	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/dispatch"
	"github.com/nadzzz/playcue/internal/health"
	"github.com/nadzzz/playcue/internal/interpreter"
	"github.com/nadzzz/playcue/internal/library"
	"github.com/nadzzz/playcue/internal/message"
	"github.com/nadzzz/playcue/internal/resolve"
	"github.com/nadzzz/playcue/internal/transport"
	grpctransport "github.com/nadzzz/playcue/internal/transport/grpc"
	httptransport "github.com/nadzzz/playcue/internal/transport/http"
	mqtttransport "github.com/nadzzz/playcue/internal/transport/mqtt"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/playcue.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("playcue %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("playcue starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lookup, err := library.Open(cfg.Library)
	if err != nil {
		slog.Error("failed to open music library", "backend", cfg.Library.Backend, "error", err)
		os.Exit(1)
	}

	dispatcher := dispatch.NewDispatcher(
		interpreter.New(cfg.Interpreter),
		resolve.New(cfg.Resolver, resolve.EditDistance{}),
	)

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port, interpreter.Usage()))
	}
	if cfg.Transports.MQTT.Enabled {
		transports = append(transports, mqtttransport.New(cfg.Transports.MQTT))
	}

	service := dispatch.NewService(dispatcher, lookup, transports, defaultTargets(cfg.Targets))

	// HTTP and gRPC can deliver to targets without listening themselves.
	enabled := make(map[string]bool, len(transports))
	for _, t := range transports {
		enabled[t.Name()] = true
	}
	for name, t := range cfg.Targets {
		switch {
		case enabled[t.Protocol]:
		case t.Protocol == "http":
			service.AddTransport(httptransport.New(0, nil))
			enabled["http"] = true
		case t.Protocol == "grpc":
			service.AddTransport(grpctransport.New(0))
			enabled["grpc"] = true
		default:
			slog.Warn("target protocol has no transport, enable it to route", "target", name, "protocol", t.Protocol)
		}
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	if p, ok := lookup.(library.Pinger); ok {
		healthServer.AddCheck("library", p.Ping)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return healthServer.ListenAndServe(gctx)
	})

	// Start all transports.
	for _, t := range transports {
		t := t
		g.Go(func() error {
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(gctx, service.Handle); err != nil {
				return fmt.Errorf("transport %s: %w", t.Name(), err)
			}
			return nil
		})
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("playcue ready",
		"transports", len(transports),
		"targets", len(cfg.Targets),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal or the first component failure.
	<-gctx.Done()
	slog.Info("shutting down, draining...")
	healthServer.SetReady(false)

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	if err := g.Wait(); err != nil {
		slog.Error("playcue stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("playcue stopped")
}

// defaultTargets converts configured targets in name order.
func defaultTargets(targets map[string]config.Target) []message.Target {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]message.Target, 0, len(names))
	for _, name := range names {
		t := targets[name]
		out = append(out, message.Target{
			ServiceName: name,
			Endpoint:    t.Endpoint,
			Protocol:    t.Protocol,
			Token:       t.Token,
		})
	}
	return out
}
