package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testAPIKey = "VRTX.AAAAAAAAAAAAAAAAAAAAAA.secret"

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr bool
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			yaml: `
api_key: VRTX.AAAAAAAAAAAAAAAAAAAAAA.secret
base_url: https://staging.example.com
timeout: 3s
log:
  level: debug
  format: text
webhooks:
  listen: 0.0.0.0:9000
  path: /hooks
  secret: whsec
  max_body_size: 512KB
  store_path: /tmp/events.db
  strict: true
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL != "https://staging.example.com" {
					t.Errorf("base_url = %q", cfg.BaseURL)
				}
				if cfg.Timeout != 3*time.Second {
					t.Errorf("timeout = %v", cfg.Timeout)
				}
				if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
					t.Errorf("log = %+v", cfg.Log)
				}
				if cfg.Webhooks.MaxBodyBytes() != 512*1024 {
					t.Errorf("max body = %d", cfg.Webhooks.MaxBodyBytes())
				}
				if !cfg.Webhooks.Strict {
					t.Error("strict not parsed")
				}
				if err := cfg.Validate(); err != nil {
					t.Errorf("Validate() = %v", err)
				}
				if err := cfg.ValidateWebhooks(); err != nil {
					t.Errorf("ValidateWebhooks() = %v", err)
				}
			},
		},
		{
			name: "defaults applied",
			yaml: `api_key: x`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL != DefaultBaseURL {
					t.Errorf("base_url = %q", cfg.BaseURL)
				}
				if cfg.Timeout != DefaultTimeout {
					t.Errorf("timeout = %v", cfg.Timeout)
				}
				if cfg.Webhooks.Path != DefaultWebhookPath || cfg.Webhooks.Listen != DefaultListen {
					t.Errorf("webhooks = %+v", cfg.Webhooks)
				}
				if cfg.Webhooks.MaxBodyBytes() != DefaultMaxBodySize {
					t.Errorf("max body = %d", cfg.Webhooks.MaxBodyBytes())
				}
			},
		},
		{
			name: "env var interpolation",
			yaml: `
api_key: ${TEST_VORTEX_KEY}
webhooks:
  secret: ${TEST_VORTEX_SECRET}
`,
			env: map[string]string{
				"TEST_VORTEX_KEY":    testAPIKey,
				"TEST_VORTEX_SECRET": "whsec_123",
			},
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.APIKey != testAPIKey {
					t.Errorf("api_key = %q", cfg.APIKey)
				}
				if cfg.Webhooks.Secret != "whsec_123" {
					t.Errorf("secret = %q", cfg.Webhooks.Secret)
				}
			},
		},
		{
			name: "unresolved placeholder fails validation",
			yaml: `api_key: ${TEST_VORTEX_UNSET_KEY}`,
			checkFn: func(t *testing.T, cfg *Config) {
				err := cfg.Validate()
				if err == nil || !strings.Contains(err.Error(), "TEST_VORTEX_UNSET_KEY") {
					t.Errorf("Validate() = %v, want unresolved variable error", err)
				}
			},
		},
		{
			name:    "invalid yaml",
			yaml:    "api_key: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "vortex.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0600); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.SourcePath != path {
				t.Errorf("SourcePath = %q, want %q", cfg.SourcePath, path)
			}
			if tt.checkFn != nil {
				tt.checkFn(t, cfg)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, testAPIKey)
	t.Setenv(EnvWebhookSecret, "from-env")
	t.Setenv(EnvBaseURL, "http://localhost:4000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SourcePath != "" {
		t.Errorf("SourcePath = %q, want empty", cfg.SourcePath)
	}
	if cfg.APIKey != testAPIKey || cfg.Webhooks.Secret != "from-env" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.BaseURL != "http://localhost:4000" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if cfg.Webhooks.FeedSize != DefaultFeedSize {
		t.Errorf("feed_size = %d, want %d", cfg.Webhooks.FeedSize, DefaultFeedSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestEnvDoesNotOverrideFileValues(t *testing.T) {
	t.Setenv(EnvWebhookSecret, "from-env")

	path := filepath.Join(t.TempDir(), "vortex.yaml")
	if err := os.WriteFile(path, []byte("webhooks:\n  secret: from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Webhooks.Secret != "from-file" {
		t.Errorf("secret = %q, want from-file", cfg.Webhooks.Secret)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: "api_key is required"},
		{name: "malformed key", mutate: func(c *Config) { c.APIKey = "nope" }, wantErr: "api_key"},
		{name: "bad base url", mutate: func(c *Config) { c.BaseURL = "ftp://x" }, wantErr: "base_url"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := applyConfigDefaults(&Config{APIKey: testAPIKey})
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWebhooks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *WebhooksConfig)
		wantErr string
	}{
		{name: "ok", mutate: func(w *WebhooksConfig) {}},
		{name: "blank secret", mutate: func(w *WebhooksConfig) { w.Secret = "  " }, wantErr: "webhooks.secret"},
		{name: "relative path", mutate: func(w *WebhooksConfig) { w.Path = "hooks" }, wantErr: "webhooks.path"},
		{name: "bad size", mutate: func(w *WebhooksConfig) { w.MaxBodySize = "lots" }, wantErr: "max_body_size"},
		{name: "negative feed", mutate: func(w *WebhooksConfig) { w.FeedSize = -1 }, wantErr: "feed_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := applyConfigDefaults(&Config{Webhooks: WebhooksConfig{Secret: "whsec"}})
			tt.mutate(&cfg.Webhooks)
			err := cfg.ValidateWebhooks()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateWebhooks() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ValidateWebhooks() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", DefaultMaxBodySize, false},
		{"2048", 2048, false},
		{"1kb", 1024, false},
		{"2MB", 2 * 1024 * 1024, false},
		{"1GB", 1024 * 1024 * 1024, false},
		{"0", 0, true},
		{"-1MB", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseByteSize(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseByteSize(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseByteSize(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}
