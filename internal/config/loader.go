package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/vortex/token"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Environment variables that override file values.
const (
	EnvAPIKey        = "VORTEX_API_KEY"
	EnvBaseURL       = "VORTEX_BASE_URL"
	EnvWebhookSecret = "VORTEX_WEBHOOK_SECRET"
)

// Default returns a config populated with defaults and environment
// overrides. It is used when no config file exists.
func Default() *Config {
	cfg := applyConfigDefaults(&Config{})
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads and parses configuration from a file. An empty path, or a
// path that does not exist, yields Default().
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolateEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", absPath, err)
	}
	cfg.SourcePath = absPath

	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyConfigDefaults(cfg *Config) *Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Webhooks.Listen == "" {
		cfg.Webhooks.Listen = DefaultListen
	}
	if cfg.Webhooks.Path == "" {
		cfg.Webhooks.Path = DefaultWebhookPath
	}
	if cfg.Webhooks.MaxBodySize == "" {
		cfg.Webhooks.MaxBodySize = defaultMaxBodyString
	}
	if cfg.Webhooks.StorePath == "" {
		cfg.Webhooks.StorePath = DefaultStorePath
	}
	if cfg.Webhooks.FeedSize == 0 {
		cfg.Webhooks.FeedSize = DefaultFeedSize
	}
	return cfg
}

// applyEnvOverrides fills values that are empty or still hold an
// unresolved ${VAR} placeholder.
func applyEnvOverrides(cfg *Config) {
	override := func(dst *string, env string) {
		if v, ok := os.LookupEnv(env); ok && (*dst == "" || envVarPattern.MatchString(*dst)) {
			*dst = v
		}
	}
	override(&cfg.APIKey, EnvAPIKey)
	override(&cfg.Webhooks.Secret, EnvWebhookSecret)
	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
}

// interpolateEnv replaces ${VAR} with environment variable values.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}

		// If not found, leave the placeholder (will fail validation if required)
		return match
	})
}

// Validate checks the settings every command relies on. Webhook settings
// are checked by ValidateWebhooks.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (set it in the config file or $%s)", EnvAPIKey)
	}
	if m := envVarPattern.FindStringSubmatch(c.APIKey); m != nil {
		return fmt.Errorf("api_key: environment variable ${%s} is not set", m[1])
	}
	if _, err := token.ParseAPIKey(c.APIKey); err != nil {
		return fmt.Errorf("api_key: %w", err)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// ValidateWebhooks checks the webhook receiver settings.
func (c *Config) ValidateWebhooks() error {
	w := c.Webhooks
	if strings.TrimSpace(w.Secret) == "" {
		return fmt.Errorf("webhooks.secret is required (set it in the config file or $%s)", EnvWebhookSecret)
	}
	if m := envVarPattern.FindStringSubmatch(w.Secret); m != nil {
		return fmt.Errorf("webhooks.secret: environment variable ${%s} is not set", m[1])
	}
	if !strings.HasPrefix(w.Path, "/") {
		return fmt.Errorf("webhooks.path must start with '/', got %q", w.Path)
	}
	if w.Listen == "" {
		return fmt.Errorf("webhooks.listen is required")
	}
	if _, err := ParseByteSize(w.MaxBodySize); err != nil {
		return fmt.Errorf("webhooks.max_body_size %q: %w", w.MaxBodySize, err)
	}
	if w.FeedSize < 0 {
		return fmt.Errorf("webhooks.feed_size must not be negative")
	}
	return nil
}

// MaxBodyBytes returns webhooks.max_body_size in bytes.
func (w WebhooksConfig) MaxBodyBytes() int64 {
	n, err := ParseByteSize(w.MaxBodySize)
	if err != nil {
		return DefaultMaxBodySize
	}
	return n
}

// ParseByteSize parses size strings like "1MB", "512KB", "1048576" to bytes.
// Returns DefaultMaxBodySize if empty.
func ParseByteSize(size string) (int64, error) {
	if size == "" {
		return DefaultMaxBodySize, nil
	}

	// Handle unit suffixes (KB, MB, GB)
	upper := strings.ToUpper(strings.TrimSpace(size))
	multiplier := int64(1)

	switch {
	case strings.HasSuffix(upper, "KB"):
		multiplier = 1024
		upper = strings.TrimSuffix(upper, "KB")
	case strings.HasSuffix(upper, "MB"):
		multiplier = 1024 * 1024
		upper = strings.TrimSuffix(upper, "MB")
	case strings.HasSuffix(upper, "GB"):
		multiplier = 1024 * 1024 * 1024
		upper = strings.TrimSuffix(upper, "GB")
	}

	value, err := strconv.ParseInt(strings.TrimSpace(upper), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}

	result := value * multiplier
	if result/multiplier != value {
		return 0, fmt.Errorf("size too large")
	}
	return result, nil
}
