package openapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	apperrors "github.com/restmcp/restmcp/internal/errors"
)

// httpClient is the client used for remote spec fetches. Variable so tests
// can swap it.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load normalizes an already-parsed document structure.
func Load(v any) (*Document, error) {
	return Parse(v)
}

// LoadBytes decodes and normalizes a raw JSON or YAML document.
func LoadBytes(data []byte) (*Document, error) {
	v, err := decodeDocument(data)
	if err != nil {
		return nil, apperrors.New("openapi", "LoadBytes", apperrors.ErrInvalidSpec, err)
	}
	return Parse(v)
}

// LoadReader reads and normalizes a document from a stream.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.New("openapi", "LoadReader", apperrors.ErrMissingSpec, err)
	}
	return LoadBytes(data)
}

// LoadFile reads and normalizes a document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.New("openapi", "LoadFile", apperrors.ErrMissingSpec, err).
			WithContext("path", path)
	}
	return LoadBytes(data)
}

// LoadURL fetches a document with a GET request and normalizes it.
// The userAgent should be a product/version pair, e.g. "restmcp/1.0.0".
// A non-2xx response is a fatal load failure with kind ErrMissingSpec.
func LoadURL(ctx context.Context, rawURL, userAgent string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.New("openapi", "LoadURL", apperrors.ErrMissingSpec, err).
			WithContext("url", rawURL)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, apperrors.New("openapi", "LoadURL", apperrors.ErrMissingSpec, err).
			WithContext("url", rawURL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.New("openapi", "LoadURL", apperrors.ErrMissingSpec,
			fmt.Errorf("spec fetch returned status %d", resp.StatusCode)).
			WithContext("url", rawURL).
			WithContext("status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New("openapi", "LoadURL", apperrors.ErrMissingSpec, err).
			WithContext("url", rawURL)
	}
	return LoadBytes(data)
}
