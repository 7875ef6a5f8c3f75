package config

import (
	"fmt"
	"net/url"
)

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := validateSpec(cfg); err != nil {
		return fmt.Errorf("invalid spec config: %w", err)
	}

	if err := validateGateway(cfg); err != nil {
		return fmt.Errorf("invalid gateway config: %w", err)
	}

	return nil
}

// validateServer validates the server-related fields.
func validateServer(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	// 0 is allowed, meaning no idle timeout
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}

	return nil
}

// validateSpec validates the spec source and upstream API fields.
func validateSpec(cfg *Config) error {
	if cfg.SpecPath == "" && cfg.SpecURL == "" {
		return fmt.Errorf("one of SPEC_PATH or SPEC_URL is required")
	}
	if cfg.SpecPath != "" && cfg.SpecURL != "" {
		return fmt.Errorf("SPEC_PATH and SPEC_URL are mutually exclusive")
	}

	if cfg.SpecURL != "" {
		parsed, err := url.Parse(cfg.SpecURL)
		if err != nil {
			return fmt.Errorf("invalid SPEC_URL: %w", err)
		}
		if !parsed.IsAbs() {
			return fmt.Errorf("SPEC_URL must be an absolute URL")
		}
		if parsed.Scheme != "https" && parsed.Scheme != "http" {
			return fmt.Errorf("SPEC_URL must use http or https scheme")
		}
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL: %w", err)
	}
	if !parsed.IsAbs() {
		return fmt.Errorf("API_BASE_URL must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("API_BASE_URL must use http or https scheme")
	}

	return nil
}

// validateGateway validates the gateway-related fields.
func validateGateway(cfg *Config) error {
	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreBolt:
		if cfg.SessionDBPath == "" {
			return fmt.Errorf("SESSION_DB_PATH is required for the bolt session store")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q", SessionStoreMemory, SessionStoreBolt)
	}

	if len(cfg.ForwardHeaders) == 0 {
		return fmt.Errorf("FORWARD_HEADERS must not be empty")
	}

	if cfg.ServerName == "" {
		return fmt.Errorf("SERVER_NAME is required")
	}
	if cfg.ServerVersion == "" {
		return fmt.Errorf("SERVER_VERSION is required")
	}

	return nil
}
