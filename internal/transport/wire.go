package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/restmcp/restmcp/internal/config"
	"github.com/restmcp/restmcp/internal/transport/internal/handlers"
	transporthttp "github.com/restmcp/restmcp/internal/transport/internal/http"
	"github.com/restmcp/restmcp/internal/transport/internal/middleware"
)

// NewServer creates a configured HTTP server.
// The server is configured with timeouts from the config and uses the provided router.
func NewServer(cfg *config.Config, router Router) Server {
	return transporthttp.NewServer(cfg, router)
}

// NewRouter creates a new HTTP router backed by http.ServeMux.
func NewRouter() Router {
	return transporthttp.NewRouter()
}

// NewAuthMiddleware creates bearer-token authentication middleware.
// It validates HS256-signed JWTs from the Authorization header.
func NewAuthMiddleware(secret []byte, responder ErrorResponder) Middleware {
	return middleware.NewAuthMiddleware(secret, responder)
}

// NewErrorResponder creates a JSON error responder for transport failures.
func NewErrorResponder() ErrorResponder {
	return transporthttp.NewErrorResponder()
}

// NewHealthHandler creates the health check handler.
// It provides a simple health status endpoint.
func NewHealthHandler() http.Handler {
	return handlers.NewHealthHandler()
}

// NewLoggingMiddleware creates request logging middleware.
// It logs HTTP request details using structured logging.
// If logger is nil, it uses the default slog logger.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return middleware.NewLoggingMiddleware(logger)
}

// NewRecoveryMiddleware creates panic recovery middleware.
// It recovers from panics and returns a 500 error to the client.
// If logger is nil, it uses the default slog logger.
func NewRecoveryMiddleware(responder ErrorResponder, logger *slog.Logger) Middleware {
	return middleware.NewRecoveryMiddleware(responder, logger)
}

// Config holds the configuration needed for the transport layer.
type Config struct {
	// ServerConfig is the server configuration.
	ServerConfig *config.Config

	// Gateway processes MCP protocol requests at the /mcp endpoint.
	Gateway http.Handler

	// AuthSecret, when non-empty, enables bearer-token authentication
	// on the /mcp endpoint using this HS256 signing secret.
	AuthSecret string
}

// NewTransportServices creates all transport layer services from the configuration.
// This is a convenience function for dependency injection that wires up the complete
// HTTP transport layer with routing, middleware, and handlers.
func NewTransportServices(cfg *Config) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ServerConfig == nil {
		return nil, nil, fmt.Errorf("server config cannot be nil")
	}
	if cfg.Gateway == nil {
		return nil, nil, fmt.Errorf("gateway handler cannot be nil")
	}

	responder := NewErrorResponder()

	recoveryMiddleware := NewRecoveryMiddleware(responder, nil)
	loggingMiddleware := NewLoggingMiddleware(nil)

	router := NewRouter()
	router.Use(recoveryMiddleware, loggingMiddleware)

	// Public endpoints (no auth required)
	router.Handle("GET /health", NewHealthHandler())

	// The gateway handles its own method dispatch (POST, DELETE, OPTIONS),
	// so the route is registered without a method prefix.
	gatewayHandler := cfg.Gateway
	if cfg.AuthSecret != "" {
		gatewayHandler = NewAuthMiddleware([]byte(cfg.AuthSecret), responder)(gatewayHandler)
	}
	router.Handle("/mcp", gatewayHandler)

	server := NewServer(cfg.ServerConfig, router)

	return server, router, nil
}
