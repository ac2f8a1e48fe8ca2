package config

import (
	"fmt"
	"log/slog"
)

// Config holds runtime settings. The env tags are relative to EnvPrefix.
type Config struct {
	StorageBackend string `json:"storage_backend" env:"STORAGE_BACKEND"`
	DataDir        string `json:"data_dir" env:"DATA_DIR"`
	DatabaseDSN    string `json:"database_dsn" env:"DATABASE_DSN"`

	S3Bucket       string `json:"s3_bucket" env:"S3_BUCKET"`
	S3Region       string `json:"s3_region" env:"S3_REGION"`
	S3BaseEndpoint string `json:"s3_base_endpoint" env:"S3_BASE_ENDPOINT"`
	S3AccessKey    string `json:"s3_access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey    string `json:"s3_secret_key" env:"S3_SECRET_KEY"`
	S3Prefix       string `json:"s3_prefix" env:"S3_PREFIX"`

	LogLevel  string `json:"log_level" env:"LOG_LEVEL"`
	LogFormat string `json:"log_format" env:"LOG_FORMAT"`
}

// LoadDefaults populates c with defaults: files under ./data, info-level text
// logs.
func (c *Config) LoadDefaults() {
	c.StorageBackend = "fs"
	c.DataDir = "data"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate checks the values that are cheap to check before anything is
// opened.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "fs", "sqlite":
		if c.DataDir == "" && c.DatabaseDSN == "" {
			return fmt.Errorf("%s backend needs a data dir", c.StorageBackend)
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 backend needs a bucket")
		}
	case "postgres":
		if c.DatabaseDSN == "" {
			return fmt.Errorf("postgres backend needs a database dsn")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, the environment and
// flags, in that order. args excludes the program name; environ has the
// "KEY=value" form of os.Environ.
func LoadConfig(args, environ []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
