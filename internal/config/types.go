package config

import "time"

// Config represents the complete vortex CLI configuration.
type Config struct {
	APIKey   string         `yaml:"api_key"`
	BaseURL  string         `yaml:"base_url,omitempty"`
	Timeout  time.Duration  `yaml:"timeout,omitempty"`
	Log      LogConfig      `yaml:"log"`
	Webhooks WebhooksConfig `yaml:"webhooks"`

	// SourcePath is the file the config was loaded from; empty for defaults.
	SourcePath string `yaml:"-"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WebhooksConfig defines the local webhook receiver.
type WebhooksConfig struct {
	Listen      string `yaml:"listen"`
	Path        string `yaml:"path"`
	Secret      string `yaml:"secret"`
	MaxBodySize string `yaml:"max_body_size,omitempty"`
	StorePath   string `yaml:"store_path"`
	// Strict rejects payloads carrying neither a name nor a type.
	Strict bool `yaml:"strict"`
	// FeedSize is how many recent deliveries GET /events replays.
	FeedSize int `yaml:"feed_size,omitempty"`
	// FeedToken protects GET /events when set.
	FeedToken string `yaml:"feed_token,omitempty"`
}

// Default values applied to missing fields.
const (
	DefaultBaseURL       = "https://api.vortexsoftware.com"
	DefaultTimeout       = 10 * time.Second
	DefaultListen        = "127.0.0.1:8081"
	DefaultWebhookPath   = "/webhooks/vortex"
	DefaultStorePath     = "./vortex-events.db"
	DefaultMaxBodySize   = 1048576 // 1 MB
	DefaultFeedSize      = 100
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	defaultMaxBodyString = "1MB"
)
