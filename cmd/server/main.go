package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/examwhispers/internal/app"
	"github.com/nfrund/examwhispers/internal/config"
	"github.com/nfrund/examwhispers/internal/logging"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/nfrund/examwhispers/internal/server"
	"github.com/nfrund/examwhispers/internal/storage"
)

func main() {
	logging.New()

	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, shutdownTracing, err := pubsub.SetupOTel(ctx, pubsub.TracingConfig{
		Enabled:     cfg.TracingEnabled,
		ServiceName: cfg.TracingService,
		ZipkinURL:   cfg.ZipkinURL,
	})
	if err != nil {
		slog.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing()

	bus := pubsub.NewBus(pubsub.WithTracer(tracer))
	defer bus.Close()

	deps, err := app.Build(cfg, bus, storage.NewDirStore(cfg.GetDataDir()))
	if err != nil {
		slog.Error("Failed to build services", "error", err)
		os.Exit(1)
	}
	if err := deps.Start(ctx); err != nil {
		slog.Error("Failed to start background services", "error", err)
		os.Exit(1)
	}

	s, err := server.New(server.Dependencies{Config: cfg, Services: deps})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}
	s.RegisterRoutes()

	slog.Info("Starting server", "addr", cfg.GetServerAddr(), "identity_backend", cfg.GetIdentityBackend())
	if err := s.Start(cfg.GetServerAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
