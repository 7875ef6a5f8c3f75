// Package transport provides the HTTP transport layer for the MCP gateway.
//
// # Architecture
//
// The transport package implements the HTTP layer that fronts the MCP
// gateway handler. It follows the adapter pattern: the gateway owns the
// protocol semantics, the transport owns the HTTP lifecycle.
//
// Package structure:
//
//	internal/transport/
//	├── transport.go              # Public interfaces
//	├── errors.go                 # Transport domain errors
//	├── wire.go                   # Factory functions
//	├── internal/
//	│   ├── http/
//	│   │   ├── server.go         # HTTP server with graceful shutdown
//	│   │   ├── router.go         # HTTP routing
//	│   │   └── response.go       # JSON error responder
//	│   ├── middleware/
//	│   │   ├── auth.go           # Bearer-token authentication middleware
//	│   │   ├── logging.go        # Request logging
//	│   │   └── recovery.go       # Panic recovery
//	│   └── handlers/
//	│       └── health.go         # Health check endpoint
//
// # Middleware Chain
//
// The middleware chain is applied in this order:
//
//  1. Recovery - catches panics and returns 500 errors
//  2. Logging - logs request details
//  3. Authentication - validates Bearer token (only when a secret is configured)
//
// # Usage Example
//
//	cfg := &transport.Config{
//		ServerConfig: serverConfig,
//		Gateway:      gatewayHandler,
//	}
//
//	server, router, err := transport.NewTransportServices(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := server.Start(); err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	if err := server.Shutdown(ctx); err != nil {
//		log.Printf("shutdown error: %v", err)
//	}
//
// # Endpoints
//
//	GET /health - Health check (always public)
//	/mcp        - MCP protocol (JSON-RPC 2.0 over streamable HTTP);
//	              POST, DELETE, and OPTIONS are dispatched by the gateway
package transport
