// Package client binds a compiled operation registry to a transport,
// turning registry entries into callable requests against a remote API.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/restmcp/restmcp/internal/errors"
	"github.com/restmcp/restmcp/internal/registry"
)

// Client dispatches operations against a base URL through a Transport.
// Clients are immutable; WithHeaders derives a new client rather than
// mutating the receiver.
type Client struct {
	registry  *registry.Registry
	transport Transport
	baseURL   string
	headers   map[string]string
}

// New creates a dispatch client. The headers map supplies default request
// headers sent with every call; it may be nil.
func New(reg *registry.Registry, transport Transport, baseURL string, headers map[string]string) *Client {
	return &Client{
		registry:  reg,
		transport: transport,
		baseURL:   strings.TrimRight(baseURL, "/"),
		headers:   cloneHeaders(headers),
	}
}

// Registry returns the operation registry this client dispatches against.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// WithHeaders derives a client whose default headers are the receiver's
// merged with extra (extra wins on conflicts). The receiver is unchanged.
func (c *Client) WithHeaders(extra map[string]string) *Client {
	merged := cloneHeaders(c.headers)
	for k, v := range extra {
		merged[k] = v
	}
	return &Client{
		registry:  c.registry,
		transport: c.transport,
		baseURL:   c.baseURL,
		headers:   merged,
	}
}

// Call runs the named operation with the given arguments. Arguments are
// split into path, query, and body components per the operation's parameter
// declarations; unclaimed keys are dropped.
func (c *Client) Call(ctx context.Context, name string, args map[string]any) (*Response, error) {
	op, err := c.registry.Get(name)
	if err != nil {
		return nil, err
	}

	ext := registry.Extract(op, args)

	u := c.baseURL + ext.Path
	if len(ext.Query) > 0 {
		values := url.Values{}
		for k, v := range ext.Query {
			values.Set(k, fmt.Sprintf("%v", v))
		}
		u += "?" + values.Encode()
	}

	var body any
	if len(ext.Body) > 0 {
		body = ext.Body
	}

	switch op.Verb {
	case "get":
		return c.transport.Get(ctx, u, c.headers)
	case "put":
		return c.transport.Put(ctx, u, body, c.headers)
	case "post":
		return c.transport.Post(ctx, u, body, c.headers)
	case "patch":
		return c.transport.Patch(ctx, u, body, c.headers)
	case "delete":
		return c.transport.Delete(ctx, u, c.headers)
	default:
		return nil, apperrors.New("client", "Call", apperrors.ErrBadRequest,
			fmt.Errorf("unsupported verb %q", op.Verb)).
			WithContext("operation", name)
	}
}

func cloneHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
