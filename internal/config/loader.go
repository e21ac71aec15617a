package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AuditConfig holds the S3-compatible audit store connection parameters.
type AuditConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key" toml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key" toml:"secret_key"`
	Bucket    string `json:"bucket" yaml:"bucket" toml:"bucket"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl" toml:"use_ssl"`
	// QueueDepth bounds the in-process audit queue (0 = default).
	QueueDepth int `json:"queue_depth" yaml:"queue_depth" toml:"queue_depth"`
}

// CORSConfig holds opt-in CORS settings for the HTTP server.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr                string      `json:"addr" yaml:"addr" toml:"addr"`
	RegistryURL         string      `json:"registry_url" yaml:"registry_url" toml:"registry_url"`
	RegistryAlias       string      `json:"registry_alias" yaml:"registry_alias" toml:"registry_alias"`
	ModelName           string      `json:"model_name" yaml:"model_name" toml:"model_name"`
	PollIntervalSeconds int         `json:"poll_interval_seconds" yaml:"poll_interval_seconds" toml:"poll_interval_seconds"`
	FeatureSchemaPath   string      `json:"feature_schema_path" yaml:"feature_schema_path" toml:"feature_schema_path"`
	MaxBodyBytes        int64       `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel            string      `json:"log_level" yaml:"log_level" toml:"log_level"`
	Audit               AuditConfig `json:"audit" yaml:"audit" toml:"audit"`
	CORS                CORSConfig  `json:"cors" yaml:"cors" toml:"cors"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
