package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Metadata MetadataConfig `toml:"metadata"`
	Log      LogConfig      `toml:"log"`
}

// StorageConfig contains the locations of the durable and transient SQLite stores.
type StorageConfig struct {
	Path         string `toml:"path"`
	SessionPath  string `toml:"session_path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MetadataConfig contains TheAudioDB client settings.
type MetadataConfig struct {
	BaseURL        string   `toml:"base_url"`
	APIKey         string   `toml:"api_key"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	RateLimit      float64  `toml:"rate_limit"`
	Workers        int      `toml:"workers"`
	PopularLimit   int      `toml:"popular_limit"`
	PopularArtists []string `toml:"popular_artists"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Timeout returns the metadata request timeout as a [time.Duration].
func (m MetadataConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// TransientPath returns the transient store location, defaulting to a per-user file in the OS temp directory.
func (s StorageConfig) TransientPath() string {
	if s.SessionPath != "" {
		return s.SessionPath
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("fakefy-%d-session.db", os.Getuid()))
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads variables from the given dotenv files (default ".env") into the process environment.
//
// Missing files are ignored.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides config values with FAKEFY_* environment variables.
func ApplyEnv(c *Config) error {
	if v := os.Getenv("FAKEFY_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("FAKEFY_SESSION_PATH"); v != "" {
		c.Storage.SessionPath = v
	}
	if v := os.Getenv("FAKEFY_AUDIODB_URL"); v != "" {
		c.Metadata.BaseURL = v
	}
	if v := os.Getenv("FAKEFY_AUDIODB_KEY"); v != "" {
		c.Metadata.APIKey = v
	}
	if v := os.Getenv("FAKEFY_RATE_LIMIT"); v != "" {
		rl, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: FAKEFY_RATE_LIMIT=%q", ErrInvalidConfig, v)
		}
		c.Metadata.RateLimit = rl
	}
	if v := os.Getenv("FAKEFY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}
