// ABOUTME: Liftlog configuration management with backend selection.
// ABOUTME: JSON file settings, LIFTLOG_* environment overrides, and the storage factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/liftlog/internal/cache"
	"github.com/harperreed/liftlog/internal/kvstore"
	"github.com/harperreed/liftlog/internal/storage"
)

// Backend names accepted in Config.Backend.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
)

// charmDBName is the Charm KV database name used by the charm backend.
const charmDBName = "liftlog"

// Config stores liftlog configuration. Every field can be overridden by
// the environment variable in its env tag.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger" or "charm".
	Backend string `json:"backend,omitempty" env:"LIFTLOG_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts liftlog.db here; Badger uses a kv/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/liftlog.
	DataDir string `json:"data_dir,omitempty" env:"LIFTLOG_DATA_DIR"`

	// Username is the lifter whose routines commands act on.
	Username string `json:"username,omitempty" env:"LIFTLOG_USER"`

	// LogLevel is a logrus level name. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" env:"LIFTLOG_LOG_LEVEL"`

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string `json:"log_file,omitempty" env:"LIFTLOG_LOG_FILE"`

	// CacheMB sizes the read cache. 0 uses the default; negative disables it.
	CacheMB int `json:"cache_mb,omitempty" env:"LIFTLOG_CACHE_MB"`

	// CharmHost overrides the Charm Cloud server for the charm backend.
	CharmHost string `json:"charm_host,omitempty" env:"LIFTLOG_CHARM_HOST"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUsername returns the configured username, falling back to $USER.
func (c *Config) GetUsername() string {
	if c.Username != "" {
		return c.Username
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "lifter"
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository for the configured backend, wrapped in
// the read cache unless CacheMB is negative.
func (c *Config) OpenStorage() (storage.Repository, error) {
	repo, err := c.openBackend()
	if err != nil {
		return nil, err
	}
	if c.CacheMB < 0 {
		return repo, nil
	}
	return cache.New(repo, c.CacheMB), nil
}

// DBPath returns the SQLite database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "liftlog.db")
}

// KVDir returns the Badger directory under the data directory.
func (c *Config) KVDir() string {
	return filepath.Join(c.GetDataDir(), "kv")
}

func (c *Config) openBackend() (storage.Repository, error) {
	backend := c.GetBackend()

	switch backend {
	case BackendSQLite:
		db, err := storage.Open(c.DBPath())
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendBadger:
		engine, err := kvstore.OpenBadger(c.KVDir())
		if err != nil {
			return nil, err
		}
		return kvstore.New(engine), nil
	case BackendCharm:
		engine, err := kvstore.OpenCharm(charmDBName, c.CharmHost)
		if err != nil {
			return nil, err
		}
		return kvstore.New(engine), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "liftlog", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads config from disk only. A missing file yields defaults.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
