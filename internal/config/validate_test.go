package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a valid configuration for testing.
// Tests can override specific fields as needed.
func validConfig() *Config {
	return &Config{
		Addr:           ":8080",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		SpecPath:       "./openapi.json",
		APIBaseURL:     "https://api.example.com",
		ForwardHeaders: []string{"Authorization"},
		SessionStore:   SessionStoreMemory,
		SessionDBPath:  "./sessions.db",
		ServerName:     "restmcp",
		ServerVersion:  "1.0.0",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      *Config
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid config with all required fields",
			config:  validConfig(),
			wantErr: false,
		},
		{
			name:        "nil config",
			config:      nil,
			wantErr:     true,
			errContains: "nil",
		},
		{
			name: "empty Addr",
			config: func() *Config {
				c := validConfig()
				c.Addr = ""
				return c
			}(),
			wantErr:     true,
			errContains: "SERVER_ADDR",
		},
		{
			name: "zero read timeout",
			config: func() *Config {
				c := validConfig()
				c.ReadTimeout = 0
				return c
			}(),
			wantErr:     true,
			errContains: "SERVER_READ_TIMEOUT",
		},
		{
			name: "negative write timeout",
			config: func() *Config {
				c := validConfig()
				c.WriteTimeout = -time.Second
				return c
			}(),
			wantErr:     true,
			errContains: "SERVER_WRITE_TIMEOUT",
		},
		{
			name: "zero idle timeout is allowed",
			config: func() *Config {
				c := validConfig()
				c.IdleTimeout = 0
				return c
			}(),
			wantErr: false,
		},
		{
			name: "negative idle timeout",
			config: func() *Config {
				c := validConfig()
				c.IdleTimeout = -time.Second
				return c
			}(),
			wantErr:     true,
			errContains: "SERVER_IDLE_TIMEOUT",
		},
		{
			name: "no spec source",
			config: func() *Config {
				c := validConfig()
				c.SpecPath = ""
				return c
			}(),
			wantErr:     true,
			errContains: "SPEC_PATH or SPEC_URL",
		},
		{
			name: "both spec sources",
			config: func() *Config {
				c := validConfig()
				c.SpecURL = "https://api.example.com/openapi.json"
				return c
			}(),
			wantErr:     true,
			errContains: "mutually exclusive",
		},
		{
			name: "relative spec URL",
			config: func() *Config {
				c := validConfig()
				c.SpecPath = ""
				c.SpecURL = "/openapi.json"
				return c
			}(),
			wantErr:     true,
			errContains: "absolute",
		},
		{
			name: "spec URL with bad scheme",
			config: func() *Config {
				c := validConfig()
				c.SpecPath = ""
				c.SpecURL = "ftp://example.com/openapi.json"
				return c
			}(),
			wantErr:     true,
			errContains: "http or https",
		},
		{
			name: "missing API base URL",
			config: func() *Config {
				c := validConfig()
				c.APIBaseURL = ""
				return c
			}(),
			wantErr:     true,
			errContains: "API_BASE_URL",
		},
		{
			name: "relative API base URL",
			config: func() *Config {
				c := validConfig()
				c.APIBaseURL = "api.example.com"
				return c
			}(),
			wantErr:     true,
			errContains: "absolute",
		},
		{
			name: "unknown session store",
			config: func() *Config {
				c := validConfig()
				c.SessionStore = "redis"
				return c
			}(),
			wantErr:     true,
			errContains: "SESSION_STORE",
		},
		{
			name: "bolt store without path",
			config: func() *Config {
				c := validConfig()
				c.SessionStore = SessionStoreBolt
				c.SessionDBPath = ""
				return c
			}(),
			wantErr:     true,
			errContains: "SESSION_DB_PATH",
		},
		{
			name: "bolt store with path",
			config: func() *Config {
				c := validConfig()
				c.SessionStore = SessionStoreBolt
				return c
			}(),
			wantErr: false,
		},
		{
			name: "empty forward headers",
			config: func() *Config {
				c := validConfig()
				c.ForwardHeaders = nil
				return c
			}(),
			wantErr:     true,
			errContains: "FORWARD_HEADERS",
		},
		{
			name: "missing server name",
			config: func() *Config {
				c := validConfig()
				c.ServerName = ""
				return c
			}(),
			wantErr:     true,
			errContains: "SERVER_NAME",
		},
		{
			name: "missing server version",
			config: func() *Config {
				c := validConfig()
				c.ServerVersion = ""
				return c
			}(),
			wantErr:     true,
			errContains: "SERVER_VERSION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Validate() error = %v, want to contain %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
