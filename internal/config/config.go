// Package config loads the ostia CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ostia/internal/logging"
	"github.com/aretw0/ostia/pkg/alphabet"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "ostia.yaml"

// Config is the CLI configuration.
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Store    StoreConfig    `mapstructure:"store"`
	Server   ServerConfig   `mapstructure:"server"`
	Alphabet AlphabetConfig `mapstructure:"alphabet"`
}

// StoreConfig selects where learned models are kept.
type StoreConfig struct {
	Backend string       `mapstructure:"backend"`
	Path    string       `mapstructure:"path"`
	Redis   RedisConfig  `mapstructure:"redis"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
	// EncryptionKey is a base64 AES-256 key. When set, models are sealed
	// before they reach the backend.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures `ostia serve`.
type ServerConfig struct {
	Port    int  `mapstructure:"port"`
	Metrics bool `mapstructure:"metrics"`
}

// AlphabetConfig configures how string samples are tokenised.
type AlphabetConfig struct {
	Mode string `mapstructure:"mode"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    ".ostia/models",
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "ostia:model:"},
			SQLite:  SQLiteConfig{Path: ".ostia/models.db"},
		},
		Server:   ServerConfig{Port: 8080, Metrics: true},
		Alphabet: AlphabetConfig{Mode: string(alphabet.Chars)},
	}
}

// Load reads a YAML file over the defaults. When path is empty DefaultPath
// is tried and silently skipped if missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode overlays YAML data onto cfg. Durations may be written as "10m".
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Validate collects every problem in the configuration.
func (c Config) Validate() error {
	var errs []string

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("unknown store backend %q", c.Store.Backend))
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		errs = append(errs, "store.redis.addr is required for the redis backend")
	}
	if c.Store.Backend == BackendSQLite && c.Store.SQLite.Path == "" {
		errs = append(errs, "store.sqlite.path is required for the sqlite backend")
	}
	if c.Store.Redis.TTL < 0 {
		errs = append(errs, "store.redis.ttl must not be negative")
	}
	if len(c.Store.FallbackKeys) > 0 && c.Store.EncryptionKey == "" {
		errs = append(errs, "store.fallback_keys requires store.encryption_key")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if _, err := alphabet.ParseMode(c.Alphabet.Mode); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
