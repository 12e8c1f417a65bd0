// Package config loads server settings from a YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDBPath   = "./data/billwise.db"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
	DefaultOwner    = "owner"
	DefaultTokenTTL = 24 * time.Hour
	DefaultMaxValue = "9999999.99"
)

// Config holds every server setting.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Limits   LimitsConfig   `yaml:"limits"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// AuthConfig enables token auth when Secret is set. The owner logs in with
// the passphrase whose bcrypt hash is PassphraseHash.
type AuthConfig struct {
	Owner          string `yaml:"owner"`
	Secret         string `yaml:"secret"`
	PassphraseHash string `yaml:"passphrase_hash"`
	TokenTTL       string `yaml:"token_ttl"`

	TokenDuration time.Duration `yaml:"-"`
}

// Enabled reports whether RPCs require a token.
func (a AuthConfig) Enabled() bool {
	return a.Secret != ""
}

type LimitsConfig struct {
	// MaxValue caps single amounts and wallet balances.
	MaxValue string `yaml:"max_value"`

	Max decimal.Decimal `yaml:"-"`
}

// Load reads path (if not empty), then .env in the working directory (if
// present), then environment variables, and fills in defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.parse(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (c *Config) applyEnv() error {
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Auth.Owner = getEnv("AUTH_OWNER", c.Auth.Owner)
	c.Auth.Secret = getEnv("AUTH_SECRET", c.Auth.Secret)
	c.Auth.PassphraseHash = getEnv("AUTH_PASSPHRASE_HASH", c.Auth.PassphraseHash)
	c.Auth.TokenTTL = getEnv("AUTH_TOKEN_TTL", c.Auth.TokenTTL)
	c.Limits.MaxValue = getEnv("MAX_VALUE", c.Limits.MaxValue)

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		c.Server.Port = p
	}
	return nil
}

// applyDefaults fills whatever the file and environment left empty.
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Auth.Owner == "" {
		c.Auth.Owner = DefaultOwner
	}
	if c.Limits.MaxValue == "" {
		c.Limits.MaxValue = DefaultMaxValue
	}
}

func (c *Config) parse() error {
	c.Auth.TokenDuration = DefaultTokenTTL
	if c.Auth.TokenTTL != "" {
		d, err := time.ParseDuration(c.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("invalid token_ttl %q: %w", c.Auth.TokenTTL, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid token_ttl %q: must be positive", c.Auth.TokenTTL)
		}
		c.Auth.TokenDuration = d
	}

	maxValue, err := decimal.NewFromString(c.Limits.MaxValue)
	if err != nil {
		return fmt.Errorf("invalid max_value %q: %w", c.Limits.MaxValue, err)
	}
	if !maxValue.IsPositive() {
		return fmt.Errorf("invalid max_value %q: must be positive", c.Limits.MaxValue)
	}
	c.Limits.Max = maxValue

	if c.Auth.Enabled() && c.Auth.PassphraseHash == "" {
		return errors.New("auth secret is set but passphrase_hash is empty")
	}
	return nil
}
