package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Media strategies accepted by FOTO_STRATEGY and AUDIO_STRATEGY.
const (
	StrategyInline      = "inline"
	StrategyObjectStore = "object_store"
	StrategyExternalURL = "external_url"
)

// Object storage providers accepted by STORAGE_PROVIDER.
const (
	ProviderDrive = "drive"
	ProviderLocal = "local"
)

type Config struct {
	AppEnv   string         `koanf:"app_env"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Media    MediaConfig    `koanf:"media"`
	Storage  StorageConfig  `koanf:"storage"`
	CORS     CORSConfig     `koanf:"cors"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	CallTimeout     time.Duration `koanf:"call_timeout"`
	LogSQL          bool          `koanf:"log_sql"`
}

type MediaConfig struct {
	FotoStrategy  string `koanf:"foto_strategy"`
	AudioStrategy string `koanf:"audio_strategy"`
	MaxBytes      int64  `koanf:"max_bytes"`
}

type StorageConfig struct {
	Provider        string `koanf:"provider"`
	DriveFolderID   string `koanf:"drive_folder_id"`
	CredentialsJSON string `koanf:"credentials_json"`
	CredentialsFile string `koanf:"credentials_file"`
	LocalDir        string `koanf:"local_dir"`
	LocalURL        string `koanf:"local_url"`
}

type CORSConfig struct {
	Enabled          bool     `koanf:"enabled"`
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// envMappings maps recognised environment variables to koanf paths.
// Variables that are not listed here are ignored.
var envMappings = map[string]string{
	"app_env":                 "app_env",
	"server_addr":             "server.addr",
	"shutdown_timeout":        "server.shutdown_timeout",
	"database_url":            "database.url",
	"db_max_open_conns":       "database.max_open_conns",
	"db_max_idle_conns":       "database.max_idle_conns",
	"db_conn_max_lifetime":    "database.conn_max_lifetime",
	"db_conn_max_idle_time":   "database.conn_max_idle_time",
	"db_call_timeout":         "database.call_timeout",
	"db_log_sql":              "database.log_sql",
	"foto_strategy":           "media.foto_strategy",
	"audio_strategy":          "media.audio_strategy",
	"media_max_bytes":         "media.max_bytes",
	"storage_provider":        "storage.provider",
	"drive_folder_id":         "storage.drive_folder_id",
	"google_credentials_json": "storage.credentials_json",
	"google_credentials_file": "storage.credentials_file",
	"local_storage_dir":       "storage.local_dir",
	"local_storage_url":       "storage.local_url",
	"cors_enabled":            "cors.enabled",
	"cors_allowed_origins":    "cors.allowed_origins",
	"cors_allow_credentials":  "cors.allow_credentials",
	"log_level":               "logging.level",
	"log_format":              "logging.format",
	"metrics_enabled":         "metrics.enabled",
}

// sliceConfigPaths are read from comma-separated environment values.
var sliceConfigPaths = []string{"cors.allowed_origins"}

func defaultConfig() *Config {
	return &Config{
		AppEnv: "dev",
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			CallTimeout:     30 * time.Second,
		},
		Media: MediaConfig{
			FotoStrategy:  StrategyExternalURL,
			AudioStrategy: StrategyInline,
			MaxBytes:      25 << 20,
		},
		Storage: StorageConfig{
			Provider: ProviderDrive,
			LocalDir: "./uploads",
			LocalURL: "/static/uploads",
		},
		CORS: CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads an optional .env file, then layers environment variables over
// the defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.Database.URL = strings.TrimSpace(c.Database.URL)
	c.Media.FotoStrategy = strings.ToLower(strings.TrimSpace(c.Media.FotoStrategy))
	c.Media.AudioStrategy = strings.ToLower(strings.TrimSpace(c.Media.AudioStrategy))
	c.Storage.Provider = strings.ToLower(strings.TrimSpace(c.Storage.Provider))
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// UsesObjectStore reports whether any media strategy uploads to object storage.
func (c *Config) UsesObjectStore() bool {
	return c.Media.FotoStrategy == StrategyObjectStore || c.Media.AudioStrategy == StrategyObjectStore
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	if c.Database.MaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return errors.New("DB_MAX_IDLE_CONNS must not be negative")
	}
	if c.Media.MaxBytes <= 0 {
		return errors.New("MEDIA_MAX_BYTES must be positive")
	}
	for name, s := range map[string]string{
		"FOTO_STRATEGY":  c.Media.FotoStrategy,
		"AUDIO_STRATEGY": c.Media.AudioStrategy,
	} {
		switch s {
		case StrategyInline, StrategyObjectStore, StrategyExternalURL:
		default:
			return fmt.Errorf("%s: unknown strategy %q", name, s)
		}
	}

	switch c.Storage.Provider {
	case ProviderDrive:
		if c.UsesObjectStore() && c.Storage.CredentialsJSON == "" && c.Storage.CredentialsFile == "" {
			return errors.New("GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE must be set for the drive provider")
		}
	case ProviderLocal:
		if c.Storage.LocalDir == "" {
			return errors.New("LOCAL_STORAGE_DIR is empty")
		}
	default:
		return fmt.Errorf("STORAGE_PROVIDER: unknown provider %q", c.Storage.Provider)
	}
	return nil
}
