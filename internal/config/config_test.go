// ABOUTME: Tests for liftlog configuration management.
// ABOUTME: Covers env-over-file precedence, defaults, and how OpenStorage stacks the cache.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/liftlog/internal/cache"
	"github.com/harperreed/liftlog/internal/kvstore"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
)

var envVars = []string{
	"LIFTLOG_BACKEND", "LIFTLOG_DATA_DIR", "LIFTLOG_USER", "LIFTLOG_LOG_LEVEL",
	"LIFTLOG_LOG_FILE", "LIFTLOG_CACHE_MB", "LIFTLOG_CHARM_HOST",
}

// setupConfigHome points the config file at a temp dir and clears every
// LIFTLOG_* variable so the host environment cannot leak in.
func setupConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range envVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func TestGetters(t *testing.T) {
	t.Setenv("USER", "dylan")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"backend default", (&Config{}).GetBackend(), BackendSQLite},
		{"backend explicit", (&Config{Backend: BackendBadger}).GetBackend(), BackendBadger},
		{"log level default", (&Config{}).GetLogLevel(), "warn"},
		{"log level explicit", (&Config{LogLevel: "debug"}).GetLogLevel(), "debug"},
		{"username from $USER", (&Config{}).GetUsername(), "dylan"},
		{"username explicit", (&Config{Username: "harper"}).GetUsername(), "harper"},
		{"db path", (&Config{DataDir: "/data"}).DBPath(), filepath.Join("/data", "liftlog.db")},
		{"kv dir", (&Config{DataDir: "/data"}).KVDir(), filepath.Join("/data", "kv")},
		{"data dir default", (&Config{}).GetDataDir(), storage.DataDir()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestGetUsernameLastResort(t *testing.T) {
	t.Setenv("USER", "")
	if got := (&Config{}).GetUsername(); got != "lifter" {
		t.Errorf("GetUsername() = %q, want lifter", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct{ in, want string }{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"data/liftlog", "data/liftlog"},
		{"~", home},
		{"~/data/liftlog", filepath.Join(home, "data/liftlog")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := (&Config{DataDir: "~/lifts"}).GetDataDir(); got != filepath.Join(home, "lifts") {
		t.Errorf("GetDataDir() = %q, want ~ expanded", got)
	}
}

func TestLoadWithoutFileUsesEnvOnly(t *testing.T) {
	setupConfigHome(t)
	t.Setenv("LIFTLOG_BACKEND", BackendBadger)
	t.Setenv("LIFTLOG_CHARM_HOST", "charm.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != BackendBadger || cfg.CharmHost != "charm.example.com" {
		t.Errorf("Expected env values, got backend=%q host=%q", cfg.Backend, cfg.CharmHost)
	}
	if cfg.Username != "" || cfg.CacheMB != 0 {
		t.Errorf("Expected unset fields to stay empty, got %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := setupConfigHome(t)

	file := &Config{
		Backend:  BackendSQLite,
		DataDir:  "/from/file",
		Username: "from-file",
		LogLevel: "info",
		CacheMB:  16,
	}
	if err := file.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "liftlog", "config.json")); err != nil {
		t.Fatalf("Expected config file at XDG path: %v", err)
	}

	t.Setenv("LIFTLOG_USER", "from-env")
	t.Setenv("LIFTLOG_CACHE_MB", "-1")
	t.Setenv("LIFTLOG_LOG_FILE", "/tmp/liftlog.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tests := []struct {
		field     string
		got, want any
	}{
		{"Username", cfg.Username, "from-env"},
		{"CacheMB", cfg.CacheMB, -1},
		{"LogFile", cfg.LogFile, "/tmp/liftlog.log"},
		{"Backend", cfg.Backend, BackendSQLite},
		{"DataDir", cfg.DataDir, "/from/file"},
		{"LogLevel", cfg.LogLevel, "info"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, tt.got, tt.want)
		}
	}

	fileOnly, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if fileOnly.Username != "from-file" {
		t.Errorf("LoadFile() must ignore env, got Username=%q", fileOnly.Username)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("invalid env", func(t *testing.T) {
		setupConfigHome(t)
		t.Setenv("LIFTLOG_CACHE_MB", "lots")
		if _, err := Load(); err == nil {
			t.Error("Expected error for non-numeric LIFTLOG_CACHE_MB")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := setupConfigHome(t)
		configDir := filepath.Join(dir, "liftlog")
		if err := os.MkdirAll(configDir, 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(); err == nil {
			t.Error("Expected error for invalid JSON config")
		}
	})
}

func TestOpenStorageStacking(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		cached    bool
		wantInner string
	}{
		{"sqlite cached by default", Config{}, true, "*storage.DB"},
		{"sqlite uncached", Config{Backend: BackendSQLite, CacheMB: -1}, false, "*storage.DB"},
		{"badger cached", Config{Backend: BackendBadger, CacheMB: 8}, true, "*kvstore.Store"},
		{"badger uncached", Config{Backend: BackendBadger, CacheMB: -1}, false, "*kvstore.Store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.DataDir = t.TempDir()
			repo, err := tt.cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage() failed: %v", err)
			}
			defer repo.Close()

			inner := repo
			c, isCached := repo.(*cache.Repository)
			if isCached != tt.cached {
				t.Fatalf("cached = %v, want %v (%T)", isCached, tt.cached, repo)
			}
			if isCached {
				inner = c.Unwrap()
			}

			var kind string
			switch inner.(type) {
			case *storage.DB:
				kind = "*storage.DB"
			case *kvstore.Store:
				kind = "*kvstore.Store"
			}
			if kind != tt.wantInner {
				t.Errorf("inner repository = %T, want %s", inner, tt.wantInner)
			}
		})
	}
}

// TestCachedStorageSeesOtherHandles opens the configured store twice, as a
// long-running `liftlog mcp` and a CLI run would.
func TestCachedStorageSeesOtherHandles(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}

	server, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer server.Close()

	cli, err := storage.Open(cfg.DBPath())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cli.Close()

	e := models.NewExercise("Squat")
	if err := cli.CreateExercise(e); err != nil {
		t.Fatal(err)
	}
	w := models.NewWeight(e.ID, 100)
	if err := cli.AppendWeight(w); err != nil {
		t.Fatal(err)
	}

	if got, err := server.LatestWeight(e.ID); err != nil || got.Amount != 100 {
		t.Fatalf("LatestWeight() = %v, %v; want 100", got, err)
	}

	if err := cli.DeleteWeight(e.ID, w.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := server.LatestWeight(e.ID); err == nil {
		t.Error("Expected no history after another handle deleted the only record")
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "markdown", DataDir: t.TempDir()}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	setupConfigHome(t)
	if err := (&Config{}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "{}" && got != "{}\n" {
		t.Errorf("Expected empty JSON object, got %s", got)
	}
}
