// Package main provides the entry point for the restmcp server.
// It compiles an OpenAPI document into tool operations, wires the MCP
// gateway on top of them, and manages the server lifecycle with graceful
// shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/restmcp/restmcp/internal/client"
	"github.com/restmcp/restmcp/internal/config"
	"github.com/restmcp/restmcp/internal/gateway"
	"github.com/restmcp/restmcp/internal/gateway/session"
	"github.com/restmcp/restmcp/internal/openapi"
	"github.com/restmcp/restmcp/internal/registry"
	"github.com/restmcp/restmcp/internal/transport"
)

func main() {
	// Set up structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("server configuration loaded",
		"addr", cfg.Addr,
		"spec_path", cfg.SpecPath,
		"spec_url", cfg.SpecURL,
		"api_base_url", cfg.APIBaseURL,
	)

	// Load and compile the OpenAPI document
	var doc *openapi.Document
	if cfg.SpecPath != "" {
		doc, err = openapi.LoadFile(cfg.SpecPath)
	} else {
		loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		doc, err = openapi.LoadURL(loadCtx, cfg.SpecURL, cfg.UserAgent())
		cancel()
	}
	if err != nil {
		log.Fatalf("failed to load OpenAPI document: %v", err)
	}

	ops := openapi.Compile(doc)
	reg := registry.FromOperations(ops)

	slog.Info("operations compiled",
		"title", doc.Info.Title,
		"operations", reg.Len(),
	)

	// Wire the dispatch client
	cli := client.New(reg, client.NewHTTPTransport(http.DefaultClient), cfg.APIBaseURL, cfg.APIDefaultHeaders)

	// Select the session store backend
	var sessions session.Store
	switch cfg.SessionStore {
	case config.SessionStoreBolt:
		sessions, err = session.NewBoltStore(cfg.SessionDBPath)
		if err != nil {
			log.Fatalf("failed to open session store: %v", err)
		}
	default:
		sessions = session.NewMemoryStore()
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			slog.Error("failed to close session store", "error", err)
		}
	}()

	slog.Info("session store initialized", "backend", cfg.SessionStore)

	// Wire the MCP gateway
	gw := gateway.New(&gateway.Config{
		Client:         cli,
		Sessions:       sessions,
		ServerName:     cfg.ServerName,
		ServerVersion:  cfg.ServerVersion,
		Instructions:   cfg.Instructions,
		ForwardHeaders: cfg.ForwardHeaders,
		Logger:         logger,
	})

	// Wire transport layer
	transportCfg := &transport.Config{
		ServerConfig: cfg,
		Gateway:      gw,
		AuthSecret:   cfg.AuthJWTSecret,
	}

	server, router, err := transport.NewTransportServices(transportCfg)
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}
	_ = router // Router is used internally by server

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in background goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped successfully")
}
