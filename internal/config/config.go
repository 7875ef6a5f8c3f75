// Package config provides configuration management for the restmcp server.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Session store backend names.
const (
	SessionStoreMemory = "memory"
	SessionStoreBolt   = "bolt"
)

// Config holds the complete server configuration in a flat structure.
type Config struct {
	// Server settings
	// Addr is the address to bind the HTTP server (e.g., ":8080").
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration

	// Spec settings
	// SpecPath is a filesystem path to the OpenAPI document.
	SpecPath string

	// SpecURL is a URL the OpenAPI document is fetched from.
	// Exactly one of SpecPath and SpecURL must be set.
	SpecURL string

	// Upstream API settings
	// APIBaseURL is the base URL operations are dispatched against.
	APIBaseURL string

	// APIDefaultHeaders are headers sent with every dispatched request.
	APIDefaultHeaders map[string]string

	// Gateway settings
	// ForwardHeaders are inbound header names forwarded into tool calls.
	ForwardHeaders []string

	// SessionStore selects the session backend ("memory" or "bolt").
	SessionStore string

	// SessionDBPath is the BBolt database path for the bolt backend.
	SessionDBPath string

	// AuthJWTSecret, when set, enables bearer-token validation on the
	// gateway endpoint.
	AuthJWTSecret string

	// ServerName and ServerVersion identify this server to MCP clients.
	ServerName    string
	ServerVersion string

	// Instructions is an optional instructions string returned from initialize.
	Instructions string
}

// Load reads configuration from environment variables and returns a Config.
// It sets default values for optional fields and validates the configuration.
func Load() (*Config, error) {
	readTimeout, err := parseDurationWithDefault("SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := parseDurationWithDefault("SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := parseDurationWithDefault("SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
	}

	forwardHeaders := parseCommaSeparated("FORWARD_HEADERS")
	if forwardHeaders == nil {
		forwardHeaders = []string{"Authorization"}
	}

	cfg := &Config{
		// Server settings
		Addr:         getEnvWithDefault("SERVER_ADDR", ":8080"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,

		// Spec settings
		SpecPath: os.Getenv("SPEC_PATH"),
		SpecURL:  os.Getenv("SPEC_URL"),

		// Upstream API settings
		APIBaseURL:        os.Getenv("API_BASE_URL"),
		APIDefaultHeaders: parseHeaderPairs("API_DEFAULT_HEADERS"),

		// Gateway settings
		ForwardHeaders: forwardHeaders,
		SessionStore:   getEnvWithDefault("SESSION_STORE", SessionStoreMemory),
		SessionDBPath:  getEnvWithDefault("SESSION_DB_PATH", "./sessions.db"),
		AuthJWTSecret:  os.Getenv("AUTH_JWT_SECRET"),
		ServerName:     getEnvWithDefault("SERVER_NAME", "restmcp"),
		ServerVersion:  getEnvWithDefault("SERVER_VERSION", "1.0.0"),
		Instructions:   os.Getenv("MCP_INSTRUCTIONS"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UserAgent returns the product/version pair used for outbound requests.
func (c *Config) UserAgent() string {
	return fmt.Sprintf("%s/%s", c.ServerName, c.ServerVersion)
}

// getEnvWithDefault returns the environment variable value or the default if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseCommaSeparated parses a comma-separated environment variable into a string slice.
// Empty values are filtered out. Returns nil if the environment variable is not set.
func parseCommaSeparated(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// parseHeaderPairs parses a comma-separated list of key=value header pairs.
// Entries without an "=" are skipped. Returns nil if the variable is not set.
func parseHeaderPairs(key string) map[string]string {
	pairs := parseCommaSeparated(key)
	if pairs == nil {
		return nil
	}

	headers := make(map[string]string)
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name != "" {
			headers[name] = value
		}
	}

	if len(headers) == 0 {
		return nil
	}
	return headers
}

// parseDurationWithDefault parses a duration from an environment variable.
// If the variable is not set, it uses the default value.
// Returns an error if the value is set but cannot be parsed.
func parseDurationWithDefault(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		duration, err := time.ParseDuration(defaultValue)
		if err != nil {
			return 0, fmt.Errorf("invalid default duration %q: %w", defaultValue, err)
		}
		return duration, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", value, err)
	}

	return duration, nil
}

// String returns a string representation of the configuration (for debugging).
// Sensitive values are redacted.
func (c *Config) String() string {
	secret := ""
	if c.AuthJWTSecret != "" {
		secret = "[redacted]"
	}
	return fmt.Sprintf("Config{Addr: %s, SpecPath: %s, SpecURL: %s, APIBaseURL: %s, ForwardHeaders: %v, SessionStore: %s, AuthJWTSecret: %s, ServerName: %s, ServerVersion: %s}",
		c.Addr, c.SpecPath, c.SpecURL, c.APIBaseURL,
		c.ForwardHeaders, c.SessionStore, secret, c.ServerName, c.ServerVersion)
}
