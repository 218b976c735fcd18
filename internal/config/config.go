// Package config loads and saves the cultivar configuration file and applies
// environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaseURL        = "http://127.0.0.1:8004/api"
	DefaultTimeoutSeconds = 10
	DefaultCacheTTL       = 300
	DefaultOutputFormat   = "table"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"

	configFileName = "config.yaml"
	configDirName  = ".cultivar"
)

// Environment variables read by the config loader.
const (
	EnvHome         = "CULTIVAR_HOME"
	EnvConfig       = "CULTIVAR_CONFIG"
	EnvAPIURL       = "CULTIVAR_API_URL"
	EnvAuthCookie   = "CULTIVAR_AUTH_COOKIE"
	EnvLogLevel     = "CULTIVAR_LOG_LEVEL"
	EnvLogFormat    = "CULTIVAR_LOG_FORMAT"
	EnvCacheEnabled = "CULTIVAR_CACHE_ENABLED"
	EnvProjectDir   = "CULTIVAR_PROJECT_DIR"
)

// Validation errors.
var (
	ErrInvalidBaseURL      = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout      = errors.New("api.timeout_seconds must be greater than zero")
	ErrInvalidCacheTTL     = errors.New("cache.ttl_seconds must not be negative")
	ErrInvalidOutputFormat = errors.New("output.default_format must be table, json or yaml")
)

// Config is the cultivar configuration.
type Config struct {
	API     APIConfig     `json:"api" yaml:"api"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// path is the file the config was loaded from, or will be saved to.
	path string
}

// APIConfig configures the backend connection.
type APIConfig struct {
	BaseURL        string `json:"base_url" yaml:"base_url"`
	AuthCookie     string `json:"auth_cookie,omitempty" yaml:"auth_cookie,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// OutputConfig configures non-interactive output.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format"`
}

// CacheConfig configures the list response cache.
type CacheConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TTLSeconds int    `json:"ttl_seconds" yaml:"ttl_seconds"`
	Directory  string `json:"directory,omitempty" yaml:"directory,omitempty"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Default returns a config holding only default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTL,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New loads the config file at the default path, then applies environment
// overrides. A missing or unreadable file yields the defaults.
func New() *Config {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnv(os.LookupEnv)
		return cfg
	}

	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
		cfg.path = path
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the path it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := ConfigPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the file the config belongs to.
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv applies environment overrides. Unparseable values are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvAuthCookie); ok && v != "" {
		c.API.AuthCookie = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvCacheEnabled); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
}

// Validate checks the config for values the client cannot work with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL))
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, ErrInvalidCacheTTL)
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}
	return errors.Join(errs...)
}
