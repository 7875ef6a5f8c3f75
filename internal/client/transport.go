package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	apperrors "github.com/restmcp/restmcp/internal/errors"
)

// Response is the outcome of one transport call. Body is the parsed JSON
// value when the response carried a JSON content type, otherwise the raw
// body as a string.
type Response struct {
	Status      int
	ContentType string
	Body        any
}

// Transport performs HTTP requests on behalf of the dispatch client.
// Structured bodies are JSON-encoded by the adapter; JSON response bodies
// are parsed before being returned. Concerns like TLS, pooling, retries,
// and rate limiting live behind this interface.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)
	Put(ctx context.Context, url string, body any, headers map[string]string) (*Response, error)
	Post(ctx context.Context, url string, body any, headers map[string]string) (*Response, error)
	Patch(ctx context.Context, url string, body any, headers map[string]string) (*Response, error)
	Delete(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// HTTPTransport implements Transport on net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport backed by the given client.
// A nil client gets a default with a 30 second timeout.
func NewHTTPTransport(c *http.Client) *HTTPTransport {
	if c == nil {
		c = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{client: c}
}

// Get performs a GET request.
func (t *HTTPTransport) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodGet, url, nil, headers)
}

// Put performs a PUT request.
func (t *HTTPTransport) Put(ctx context.Context, url string, body any, headers map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodPut, url, body, headers)
}

// Post performs a POST request.
func (t *HTTPTransport) Post(ctx context.Context, url string, body any, headers map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodPost, url, body, headers)
}

// Patch performs a PATCH request.
func (t *HTTPTransport) Patch(ctx context.Context, url string, body any, headers map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodPatch, url, body, headers)
}

// Delete performs a DELETE request.
func (t *HTTPTransport) Delete(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodDelete, url, nil, headers)
}

func (t *HTTPTransport) do(ctx context.Context, method, url string, body any, headers map[string]string) (*Response, error) {
	reader, err := encodeBody(body)
	if err != nil {
		return nil, apperrors.New("client", "do", apperrors.ErrBadRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.New("client", "do", apperrors.ErrBadRequest, err).
			WithContext("url", url)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, apperrors.New("client", "do", apperrors.ErrInternal, err).
			WithContext("url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New("client", "do", apperrors.ErrInternal, err).
			WithContext("url", url)
	}

	contentType := resp.Header.Get("Content-Type")
	out := &Response{Status: resp.StatusCode, ContentType: contentType}
	if strings.Contains(contentType, "application/json") && len(data) > 0 {
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, apperrors.New("client", "do", apperrors.ErrInternal,
				fmt.Errorf("parse response body: %w", err)).
				WithContext("url", url)
		}
		out.Body = parsed
	} else {
		out.Body = string(data)
	}

	return out, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}
