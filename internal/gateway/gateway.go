package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/restmcp/restmcp/internal/client"
	"github.com/restmcp/restmcp/internal/gateway/session"
)

// Gateway is the MCP JSON-RPC state machine. One inbound HTTP request maps
// to one synchronous routing pass; operation invocation happens inline.
type Gateway struct {
	client         *client.Client
	sessions       session.Store
	info           ServerInfo
	instructions   string
	forwardHeaders []string
	logger         *slog.Logger
}

// Config holds the gateway's dependencies.
type Config struct {
	// Client dispatches tool calls against the remote API.
	Client *client.Client

	// Sessions stores per-session protocol state. Defaults to an
	// in-memory store.
	Sessions session.Store

	// ServerName and ServerVersion populate initialize responses.
	ServerName    string
	ServerVersion string

	// Instructions, when set, is included in initialize responses.
	Instructions string

	// ForwardHeaders lists inbound header names merged into the dispatch
	// client for a single tools/call. Defaults to Authorization.
	ForwardHeaders []string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a gateway.
func New(cfg *Config) *Gateway {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Client == nil {
		panic("client cannot be nil")
	}

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	forward := cfg.ForwardHeaders
	if forward == nil {
		forward = []string{"Authorization"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		client:         cfg.Client,
		sessions:       sessions,
		info:           ServerInfo{Name: cfg.ServerName, Version: cfg.ServerVersion},
		instructions:   cfg.Instructions,
		forwardHeaders: forward,
		logger:         logger,
	}
}

// route processes one JSON-RPC message. For notifications the returned
// response is nil. The second return value is the id of a session created
// by initialize, empty otherwise.
func (g *Gateway) route(ctx context.Context, req *Request, header http.Header) (*Response, string) {
	if req.JSONRPC != JSONRPCVersion {
		return errorResponse(req.ID, CodeInvalidRequest, "invalid jsonrpc version"), ""
	}
	if req.Method == "" {
		return errorResponse(req.ID, CodeInvalidRequest, "method is required"), ""
	}

	switch req.Method {
	case "initialize":
		return g.handleInitialize(req)
	case "notifications/initialized":
		g.handleInitialized(header)
		return nil, ""
	case "tools/list":
		return g.handleToolsList(req), ""
	case "tools/call":
		return g.handleToolsCall(ctx, req, header), ""
	case "ping":
		return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Result: struct{}{}}, ""
	default:
		if req.IsNotification() {
			// Unknown notifications are swallowed silently.
			return nil, ""
		}
		return errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method)), ""
	}
}

// handleInitialize negotiates the protocol version and creates a session.
// The session id travels back in a response header, not the JSON body.
func (g *Gateway) handleInitialize(req *Request) (*Response, string) {
	var params InitializeParams
	if req.Params != nil {
		// Malformed params fall back to defaults; negotiation still happens.
		_ = json.Unmarshal(req.Params, &params)
	}

	version := ProtocolVersion
	if supportedVersions[params.ProtocolVersion] {
		version = params.ProtocolVersion
	}

	id := session.NewID()
	if err := g.sessions.Put(&session.Session{ID: id, ProtocolVersion: version}); err != nil {
		g.logger.Error("failed to store session", "error", err)
		return errorResponse(req.ID, CodeInternalError, "failed to create session"), ""
	}

	g.logger.Info("session created",
		"session_id", id,
		"protocol_version", version,
		"client", params.ClientInfo.Name,
	)

	result := InitializeResult{
		ProtocolVersion: version,
		Capabilities:    Capabilities{Tools: ToolsCapability{}},
		ServerInfo:      g.info,
		Instructions:    g.instructions,
	}
	return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Result: result}, id
}

// handleInitialized marks the referenced session initialized when it exists.
// Invalid or missing session ids are ignored.
func (g *Gateway) handleInitialized(header http.Header) {
	id := header.Get(HeaderSessionID)
	if id == "" {
		return
	}
	s, err := g.sessions.Get(id)
	if err != nil {
		return
	}
	s.Initialized = true
	if err := g.sessions.Put(s); err != nil {
		g.logger.Warn("failed to update session", "session_id", id, "error", err)
	}
}

func (g *Gateway) handleToolsList(req *Request) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      req.ID,
		Result:  ToolsListResult{Tools: projectTools(g.client.Registry())},
	}
}

// handleToolsCall resolves and invokes the named operation. Invocation
// failures become isError results; the JSON-RPC channel never fails because
// a downstream API call did.
func (g *Gateway) handleToolsCall(ctx context.Context, req *Request, header http.Header) *Response {
	var params ToolsCallParams
	if req.Params == nil {
		return errorResponse(req.ID, CodeInvalidParams, "params required")
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "invalid tools/call params")
	}
	if params.Name == "" {
		return errorResponse(req.ID, CodeInvalidParams, "tool name is required")
	}
	if _, err := g.client.Registry().Get(params.Name); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, fmt.Sprintf("unknown tool: %s", params.Name))
	}

	cli := g.client
	if forwarded := g.collectHeaders(header); len(forwarded) > 0 {
		cli = g.client.WithHeaders(forwarded)
	}

	text, callErr := g.invoke(ctx, cli, params.Name, params.Arguments)
	result := CallResult{Content: []Content{{Type: "text", Text: text}}}
	if callErr != nil {
		g.logger.Warn("tool call failed", "tool", params.Name, "error", callErr)
		result.IsError = true
		result.Content[0].Text = callErr.Error()
	}

	return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Result: result}
}

// invoke runs the operation and renders its result as text. Non-string
// results are JSON-serialized; string results pass through. Panics during
// invocation are captured as errors.
func (g *Gateway) invoke(ctx context.Context, cli *client.Client, name string, args map[string]any) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	resp, err := cli.Call(ctx, name, args)
	if err != nil {
		return "", err
	}

	if s, ok := resp.Body.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// collectHeaders extracts the configured forwarded headers from the inbound
// request.
func (g *Gateway) collectHeaders(header http.Header) map[string]string {
	out := make(map[string]string)
	for _, name := range g.forwardHeaders {
		if v := header.Get(name); v != "" {
			out[name] = v
		}
	}
	return out
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}
