// Package config loads the YAML configuration of the todo demo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite    = "sqlite"
	BackendMemDB     = "memdb"
	BackendRistretto = "ristretto"

	defaultBackend   = BackendSQLite
	defaultPath      = "todos.db"
	defaultCacheSize = 1 << 20
	defaultLogLevel  = "info"
)

var (
	// ErrUnknownBackend is returned for a storage backend other than the Backend constants.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrUnknownKey is returned by Override for a key it does not know.
	ErrUnknownKey     = errors.New("unknown config key")
)

// Config is the todo CLI configuration file.
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
}

// Storage selects the kvstore backend.
type Storage struct {
	// Backend is one of sqlite, memdb or ristretto.
	Backend string `yaml:"backend"`
	// Path is the sqlite database file.
	Path string `yaml:"path"`
	// CacheSize is the ristretto max cost in bytes.
	CacheSize int64 `yaml:"cache_size"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return normalize(Config{})
}

// Load reads the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, rejecting unknown fields, and fills in defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg = normalize(cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func normalize(cfg Config) Config {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaultBackend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultPath
	}
	if cfg.Storage.CacheSize <= 0 {
		cfg.Storage.CacheSize = defaultCacheSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	return cfg
}

func (cfg Config) validate() error {
	switch cfg.Storage.Backend {
	case BackendSQLite, BackendMemDB, BackendRistretto:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}
}

// Override sets the field named by a dotted key, e.g. ConfigStorageBackend.
// An empty value leaves the field untouched.
func (cfg *Config) Override(key, value string) error {
	if value == "" {
		return nil
	}
	switch key {
	case ConfigStorageBackend:
		cfg.Storage.Backend = value
	case ConfigStoragePath:
		cfg.Storage.Path = value
	case ConfigStorageCacheSize:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Storage.CacheSize = n
	case ConfigLogLevel:
		cfg.Log.Level = value
	case ConfigLogDevelopment:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Log.Development = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	*cfg = normalize(*cfg)
	return cfg.validate()
}
