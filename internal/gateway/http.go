package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// ServeHTTP implements the streamable HTTP surface: POST carries JSON-RPC
// messages, DELETE tears down a session, OPTIONS probes capabilities, and
// everything else is rejected with 405.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		g.handlePost(w, r)
	case http.MethodDelete:
		g.handleDelete(w, r)
	case http.MethodOptions:
		g.handleOptions(w)
	default:
		w.Header().Set("Allow", "POST, DELETE, OPTIONS")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (g *Gateway) handlePost(w http.ResponseWriter, r *http.Request) {
	// Protocol framing must stay alive across routing bugs: anything that
	// panics past the method handlers becomes a -32603 envelope.
	defer func() {
		if recovered := recover(); recovered != nil {
			g.logger.Error("panic during message routing", "panic", recovered)
			g.writeSingle(w, errorResponse(nil, CodeInternalError, fmt.Sprintf("%v", recovered)), "")
		}
	}()

	if !acceptsJSON(r.Header.Get("Accept")) {
		w.WriteHeader(http.StatusNotAcceptable)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		g.writeSingle(w, errorResponse(nil, CodeParseError, "Parse error"), "")
		return
	}
	defer func() {
		_ = r.Body.Close()
	}()

	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		g.writeSingle(w, errorResponse(nil, CodeParseError, "Parse error"), "")
		return
	}

	switch body[0] {
	case '[':
		g.handleBatch(w, r, body)
	case '{':
		g.handleSingle(w, r, body)
	default:
		g.writeSingle(w, errorResponse(nil, CodeInvalidRequest, "Invalid Request"), "")
	}
}

func (g *Gateway) handleSingle(w http.ResponseWriter, r *http.Request, body []byte) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		g.writeSingle(w, errorResponse(nil, CodeInvalidRequest, "Invalid Request"), "")
		return
	}

	resp, sessionID := g.route(r.Context(), &req, r.Header)

	if req.IsNotification() {
		// Notifications get no JSON-RPC response. The initialized
		// handshake acknowledges with 202; everything else is 204.
		if req.Method == "notifications/initialized" {
			w.WriteHeader(http.StatusAccepted)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	g.writeSingle(w, resp, sessionID)
}

// handleBatch processes a top-level array message-by-message in array order.
// Responses to notifications are omitted; an all-notification batch yields
// an empty 204.
func (g *Gateway) handleBatch(w http.ResponseWriter, r *http.Request, body []byte) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		g.writeSingle(w, errorResponse(nil, CodeInvalidRequest, "Invalid Request"), "")
		return
	}

	var responses []*Response
	var sessionID string
	for _, msg := range raw {
		trimmed := bytes.TrimSpace(msg)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			responses = append(responses, errorResponse(nil, CodeInvalidRequest, "Invalid Request"))
			continue
		}
		var req Request
		if err := json.Unmarshal(trimmed, &req); err != nil {
			responses = append(responses, errorResponse(nil, CodeInvalidRequest, "Invalid Request"))
			continue
		}
		resp, sid := g.route(r.Context(), &req, r.Header)
		if sid != "" {
			sessionID = sid
		}
		if req.IsNotification() {
			continue
		}
		if resp != nil {
			responses = append(responses, resp)
		}
	}

	if len(responses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if sessionID != "" {
		w.Header().Set(HeaderSessionID, sessionID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(responses); err != nil {
		g.logger.Error("failed to encode batch response", "error", err)
	}
}

// handleDelete destroys the session named by the MCP-Session-Id header.
func (g *Gateway) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(HeaderSessionID)
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := g.sessions.Delete(id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	g.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (g *Gateway) handleOptions(w http.ResponseWriter) {
	w.Header().Set("Allow", "POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id, Mcp-Protocol-Version")
	w.WriteHeader(http.StatusNoContent)
}

// acceptsJSON reports whether an Accept header admits a JSON response.
// An absent header accepts everything.
func acceptsJSON(accept string) bool {
	if accept == "" {
		return true
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.Index(mediaType, ";"); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		if mediaType == "application/json" || mediaType == "*/*" {
			return true
		}
	}
	return false
}

// writeSingle writes one JSON-RPC envelope. JSON-RPC errors still ride a
// 200 status; the error lives in the envelope.
func (g *Gateway) writeSingle(w http.ResponseWriter, resp *Response, sessionID string) {
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if sessionID != "" {
		w.Header().Set(HeaderSessionID, sessionID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		g.logger.Error("failed to encode response", "error", err)
	}
}
