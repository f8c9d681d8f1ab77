package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/productindex/internal/domain"
)

// Config holds the productindex configuration.
type Config struct {
	Vectara VectaraConfig `yaml:"vectara"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Data    DataConfig    `yaml:"data"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// VectaraConfig holds search service connection settings.
type VectaraConfig struct {
	BaseURL           string      `yaml:"base_url"`
	APIKey            string      `yaml:"api_key"`
	OAuth             OAuthConfig `yaml:"oauth"`
	ConnectTimeoutSec int         `yaml:"connect_timeout_sec"`
	ReadTimeoutSec    int         `yaml:"read_timeout_sec"`
	WriteTimeoutSec   int         `yaml:"write_timeout_sec"`
	RateLimit         RateLimit   `yaml:"rate_limit"`
}

// OAuthConfig holds OAuth2 client-credentials settings. Used instead of the API key when ClientID is set.
type OAuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	TokenURL     string `yaml:"token_url"`
}

// Enabled reports whether OAuth credentials are configured.
func (o OAuthConfig) Enabled() bool { return o.ClientID != "" }

// RateLimit holds client-side request limiting. 0 disables it.
type RateLimit struct {
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
}

// CorpusConfig holds corpus identity and lifecycle settings.
type CorpusConfig struct {
	Name        string       `yaml:"name"`
	KeyPrefix   string       `yaml:"key_prefix"`
	Description string       `yaml:"description"`
	Mode        string       `yaml:"mode"` // recreate, lookup (default: lookup)
	Settle      SettleConfig `yaml:"settle"`
}

// SettleConfig selects how the lifecycle waits after a corpus delete.
type SettleConfig struct {
	Strategy        string `yaml:"strategy"` // fixed (default), poll
	DelaySec        int    `yaml:"delay_sec"`
	PollIntervalSec int    `yaml:"poll_interval_sec"`
	MaxWaitSec      int    `yaml:"max_wait_sec"`
}

// DataConfig holds the document tree settings.
type DataConfig struct {
	Root       string   `yaml:"root"`
	Extensions []string `yaml:"extensions"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	APIKeys         []string `yaml:"api_keys"`
}

// Settle strategies.
const (
	SettleFixed = "fixed"
	SettlePoll  = "poll"
)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded into the environment first.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands environment variables in data and decodes, defaults and validates it.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Vectara.BaseURL == "" {
		c.Vectara.BaseURL = "https://api.vectara.io"
	}
	if c.Vectara.OAuth.Enabled() && c.Vectara.OAuth.TokenURL == "" {
		c.Vectara.OAuth.TokenURL = "https://vectara-prod-default.auth.us-west-2.amazoncognito.com/oauth2/token"
	}
	if c.Vectara.ConnectTimeoutSec <= 0 {
		c.Vectara.ConnectTimeoutSec = 60
	}
	if c.Vectara.ReadTimeoutSec <= 0 {
		c.Vectara.ReadTimeoutSec = 60
	}
	if c.Vectara.WriteTimeoutSec <= 0 {
		c.Vectara.WriteTimeoutSec = 60
	}
	if c.Corpus.Name == "" {
		c.Corpus.Name = "WL - Product Information"
	}
	if c.Corpus.KeyPrefix == "" {
		c.Corpus.KeyPrefix = "product_info_"
	}
	if c.Corpus.Description == "" {
		c.Corpus.Description = "An example Vectara Corpus Storing documents about products and their category."
	}
	if c.Corpus.Mode == "" {
		c.Corpus.Mode = string(domain.ModeLookup)
	}
	if c.Corpus.Settle.Strategy == "" {
		c.Corpus.Settle.Strategy = SettleFixed
	}
	if c.Corpus.Settle.DelaySec <= 0 {
		c.Corpus.Settle.DelaySec = 20
	}
	if c.Corpus.Settle.PollIntervalSec <= 0 {
		c.Corpus.Settle.PollIntervalSec = 2
	}
	if c.Corpus.Settle.MaxWaitSec <= 0 {
		c.Corpus.Settle.MaxWaitSec = 120
	}
	if len(c.Data.Extensions) == 0 {
		c.Data.Extensions = []string{"pdf", "doc", "docx"}
	}
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 90
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Vectara.APIKey == "" && !c.Vectara.OAuth.Enabled() {
		return fmt.Errorf("vectara.api_key or vectara.oauth.client_id is required")
	}
	if c.Vectara.OAuth.Enabled() && c.Vectara.OAuth.ClientSecret == "" {
		return fmt.Errorf("vectara.oauth.client_secret is required when client_id is set")
	}
	if c.Vectara.RateLimit.RequestsPerSec < 0 {
		return fmt.Errorf("vectara.rate_limit.requests_per_sec must not be negative")
	}
	if _, err := domain.ParseMode(c.Corpus.Mode); err != nil {
		return fmt.Errorf("corpus.mode: %w", err)
	}
	switch c.Corpus.Settle.Strategy {
	case SettleFixed, SettlePoll:
		// ok
	default:
		return fmt.Errorf(
			"corpus.settle.strategy must be %q or %q, got %q",
			SettleFixed, SettlePoll, c.Corpus.Settle.Strategy,
		)
	}
	for _, ext := range c.Data.Extensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			return fmt.Errorf("data.extensions entries must be non-empty and without a leading dot, got %q", ext)
		}
	}
	if c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
