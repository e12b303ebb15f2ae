package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Path != "./fakefy.db" {
			t.Errorf("expected storage path ./fakefy.db, got %s", config.Storage.Path)
		}

		if config.Metadata.BaseURL != "https://www.theaudiodb.com/api/v1/json" {
			t.Errorf("unexpected metadata base URL %s", config.Metadata.BaseURL)
		}

		if config.Metadata.APIKey != "2" {
			t.Errorf("expected api key 2, got %s", config.Metadata.APIKey)
		}

		if len(config.Metadata.PopularArtists) != 20 {
			t.Errorf("expected 20 popular artists, got %d", len(config.Metadata.PopularArtists))
		}

		if config.Metadata.PopularLimit != 100 {
			t.Errorf("expected popular limit 100, got %d", config.Metadata.PopularLimit)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Storage.Path != defaultConfig.Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[storage]
path = "/custom/path.db"
session_path = "/custom/session.db"

[metadata]
api_key = "523532"
timeout_seconds = 3
popular_artists = ["Queen", "U2"]

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Path != "/custom/path.db" {
			t.Errorf("expected storage path /custom/path.db, got %s", config.Storage.Path)
		}
		if config.Storage.TransientPath() != "/custom/session.db" {
			t.Errorf("expected transient path /custom/session.db, got %s", config.Storage.TransientPath())
		}
		if config.Metadata.APIKey != "523532" {
			t.Errorf("expected api key 523532, got %s", config.Metadata.APIKey)
		}
		if config.Metadata.Timeout() != 3*time.Second {
			t.Errorf("expected timeout 3s, got %v", config.Metadata.Timeout())
		}
		if len(config.Metadata.PopularArtists) != 2 {
			t.Errorf("expected 2 popular artists, got %d", len(config.Metadata.PopularArtists))
		}
		if config.Metadata.BaseURL != DefaultConfig().Metadata.BaseURL {
			t.Errorf("missing keys should keep defaults, got base URL %q", config.Metadata.BaseURL)
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[storage\npath = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("TransientPath Default", func(t *testing.T) {
		config := DefaultConfig()
		path := config.Storage.TransientPath()
		if !strings.HasPrefix(path, os.TempDir()) {
			t.Errorf("expected transient path under %s, got %s", os.TempDir(), path)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides values", func(t *testing.T) {
		t.Setenv("FAKEFY_DB_PATH", "/env/fakefy.db")
		t.Setenv("FAKEFY_AUDIODB_KEY", "999")
		t.Setenv("FAKEFY_RATE_LIMIT", "2.5")
		t.Setenv("FAKEFY_LOG_LEVEL", "warn")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.Storage.Path != "/env/fakefy.db" {
			t.Errorf("expected /env/fakefy.db, got %s", config.Storage.Path)
		}
		if config.Metadata.APIKey != "999" {
			t.Errorf("expected 999, got %s", config.Metadata.APIKey)
		}
		if config.Metadata.RateLimit != 2.5 {
			t.Errorf("expected 2.5, got %v", config.Metadata.RateLimit)
		}
		if config.Log.Level != "warn" {
			t.Errorf("expected warn, got %s", config.Log.Level)
		}
	})

	t.Run("invalid rate limit", func(t *testing.T) {
		t.Setenv("FAKEFY_RATE_LIMIT", "fast")

		if err := ApplyEnv(DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadEnv reads dotenv file", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("FAKEFY_SESSION_PATH=/env/session.db\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Setenv("FAKEFY_SESSION_PATH", "")
		os.Unsetenv("FAKEFY_SESSION_PATH")

		LoadEnv(envPath)

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Storage.SessionPath != "/env/session.db" {
			t.Errorf("expected /env/session.db, got %s", config.Storage.SessionPath)
		}
	})
}
