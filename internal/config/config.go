// Package config loads wikibase-api.yaml, .env files and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/wikibase"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables overriding file values.
const (
	EnvWikibaseURL      = "WIKIBASE_URL"
	EnvWikibaseUsername = "WIKIBASE_USERNAME"
	EnvWikibasePassword = "WIKIBASE_PASSWORD"
	EnvWikibaseLanguage = "WIKIBASE_LANGUAGE"
	EnvJournalDSN       = "WIKIBASE_API_JOURNAL_DSN"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type WikibaseConfig struct {
	BaseURL       string `yaml:"base_url"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Language      string `yaml:"language,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
	RetryAttempts int    `yaml:"retry_attempts,omitempty"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	CORSOrigins    []string `yaml:"cors_origins,omitempty"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes,omitempty"`
}

type JournalConfig struct {
	Driver string `yaml:"driver,omitempty"`
	Path   string `yaml:"path,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

type LogConfig struct {
	Verbose bool   `yaml:"verbose,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

type Config struct {
	Wikibase   WikibaseConfig    `yaml:"wikibase"`
	Server     ServerConfig      `yaml:"server"`
	Journal    JournalConfig     `yaml:"journal"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Log        LogConfig         `yaml:"log"`
}

// Default returns the configuration used when no file exists.
// Credentials have no defaults.
func Default() *Config {
	return &Config{
		Wikibase: WikibaseConfig{Language: wbapi.DefaultLanguage},
		Server: ServerConfig{
			Addr:           wbapi.DefaultServerAddr,
			CORSOrigins:    []string{"*"},
			MaxUploadBytes: wbapi.DefaultMaxDocumentSize,
		},
		Journal: JournalConfig{Driver: string(journal.DriverFile), Path: wbapi.DefaultJournalPath},
		Log:     LogConfig{Format: LogFormatText},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", wbapi.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Resolve loads the configuration a command runs with. An explicit path must
// exist; otherwise wikibase-api.yaml in dir is used when present. A .env file
// in dir is loaded into the process environment first, then environment
// overrides are applied.
func Resolve(dir, explicitPath string) (*Config, error) {
	if err := LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	var cfg *Config
	if explicitPath != "" {
		c, err := Load(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", explicitPath, err)
		}
		cfg = c
	} else {
		c, err := Load(filepath.Join(dir, wbapi.ConfigFileName))
		switch {
		case errors.Is(err, ErrConfigNotFound):
			cfg = Default()
		case err != nil:
			return nil, err
		default:
			cfg = c
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// LoadEnvFile loads path into the process environment without overriding
// variables already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: load %s: %v", wbapi.ErrInvalidConfig, path, err)
	}
	return nil
}

// ApplyEnv overrides file values with non-empty environment variables.
// A journal DSN from the environment selects the postgres driver.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvWikibaseURL, &c.Wikibase.BaseURL)
	set(EnvWikibaseUsername, &c.Wikibase.Username)
	set(EnvWikibasePassword, &c.Wikibase.Password)
	set(EnvWikibaseLanguage, &c.Wikibase.Language)
	if v, ok := lookup(EnvJournalDSN); ok && v != "" {
		c.Journal.DSN = v
		c.Journal.Driver = string(journal.DriverPostgres)
	}
}

// Validate checks settings every command depends on. Wikibase credentials
// are checked separately by WikibaseClientConfig, since offline commands do
// not need them.
func (c *Config) Validate() error {
	if _, err := c.Wikibase.timeout(); err != nil {
		return err
	}
	if c.Wikibase.RetryAttempts < 0 {
		return fmt.Errorf("%w: wikibase.retry_attempts must not be negative", wbapi.ErrInvalidConfig)
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("%w: server.max_upload_bytes must not be negative", wbapi.ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", wbapi.ErrInvalidConfig, LogFormatText, LogFormatJSON, c.Log.Format)
	}
	return c.JournalConfig().Validate()
}

func (w WikibaseConfig) timeout() (time.Duration, error) {
	if w.Timeout == "" {
		return wbapi.DefaultHTTPTimeout, nil
	}
	d, err := time.ParseDuration(w.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: wikibase.timeout %q is not a positive duration", wbapi.ErrInvalidConfig, w.Timeout)
	}
	return d, nil
}

// WikibaseClientConfig returns the client settings, failing when the URL or
// credentials are missing.
func (c *Config) WikibaseClientConfig() (wikibase.Config, error) {
	timeout, err := c.Wikibase.timeout()
	if err != nil {
		return wikibase.Config{}, err
	}
	wc := wikibase.Config{
		BaseURL:  c.Wikibase.BaseURL,
		Username: c.Wikibase.Username,
		Password: c.Wikibase.Password,
		Timeout:  timeout,
	}
	if err := wc.Validate(); err != nil {
		return wikibase.Config{}, fmt.Errorf("%w (set wikibase.* in %s or %s/%s/%s)",
			err, wbapi.ConfigFileName, EnvWikibaseURL, EnvWikibaseUsername, EnvWikibasePassword)
	}
	return wc, nil
}

// Language returns the label language.
func (c *Config) Language() string {
	if c.Wikibase.Language == "" {
		return wbapi.DefaultLanguage
	}
	return c.Wikibase.Language
}

// JournalConfig returns the journal backend settings.
func (c *Config) JournalConfig() journal.Config {
	return journal.Config{
		Driver: journal.Driver(c.Journal.Driver),
		Path:   c.Journal.Path,
		DSN:    c.Journal.DSN,
	}
}
