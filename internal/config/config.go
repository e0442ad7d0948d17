// Package config loads service configuration from a YAML file, .env files,
// and environment variables. Environment variables always win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the showcase-search service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Typesense TypesenseConfig `yaml:"typesense"`
	Directus  DirectusConfig  `yaml:"directus"`
	Discourse DiscourseConfig `yaml:"discourse"`
	Sync      SyncConfig      `yaml:"sync"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `yaml:"port"`
	Debug   bool   `yaml:"debug"`
}

// TypesenseConfig holds search engine connection configuration.
type TypesenseConfig struct {
	URL               string        `yaml:"url"`
	APIKey            string        `yaml:"api_key"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
}

// DirectusConfig holds CMS connection configuration.
type DirectusConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// DiscourseConfig holds forum API configuration for the comment webhook.
type DiscourseConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	APIUsername string `yaml:"api_username"`
}

// SyncConfig controls the scheduled index rebuild.
type SyncConfig struct {
	Schedule string `yaml:"schedule"`
	Enabled  bool   `yaml:"enabled"`
}

// SearchConfig holds query gateway tuning.
type SearchConfig struct {
	DefaultPageSize    int `yaml:"default_page_size"`
	MaxPageSize        int `yaml:"max_page_size"`
	GlobalDefaultLimit int `yaml:"global_default_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CORSConfig holds CORS configuration for the public search endpoints.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads the YAML config file at path, then applies .env files and
// environment variable overrides. A missing config file is not an error;
// defaults and the environment carry a full configuration on their own.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.setDefaults()
	cfg.applyEnv()

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}
	return cfg, nil
}

// loadEnvFiles loads .env.local then .env. Missing files are ignored.
func loadEnvFiles() {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

// GetPath returns the config path from CONFIG_PATH or the default.
func GetPath(defaultPath string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultPath
}

func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "showcase-search"
	}
	if c.Service.Version == "" {
		c.Service.Version = "1.0.0"
	}
	if c.Service.Port == 0 {
		c.Service.Port = 8094
	}
	if c.Typesense.URL == "" {
		c.Typesense.URL = "http://localhost:8108"
	}
	if c.Typesense.ConnectionTimeout == 0 {
		c.Typesense.ConnectionTimeout = 10 * time.Second
	}
	if c.Directus.Timeout == 0 {
		c.Directus.Timeout = 30 * time.Second
	}
	if c.Sync.Schedule == "" {
		c.Sync.Schedule = "0 * * * *"
	}
	if c.Search.DefaultPageSize == 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize == 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.GlobalDefaultLimit == 0 {
		c.Search.GlobalDefaultLimit = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Discourse.APIUsername == "" {
		c.Discourse.APIUsername = "system"
	}
}

func (c *Config) applyEnv() {
	overrideString(&c.Service.Name, "SERVICE_NAME")
	overrideInt(&c.Service.Port, "PORT")
	overrideBool(&c.Service.Debug, "DEBUG")
	overrideString(&c.Typesense.URL, "TYPESENSE_URL")
	overrideString(&c.Typesense.APIKey, "TYPESENSE_API_KEY")
	overrideString(&c.Directus.URL, "DIRECTUS_URL")
	overrideString(&c.Directus.Token, "DIRECTUS_SERVER_TOKEN")
	overrideString(&c.Discourse.URL, "DISCOURSE_API_URL")
	overrideString(&c.Discourse.APIKey, "DISCOURSE_API_KEY")
	overrideString(&c.Discourse.APIUsername, "DISCOURSE_API_USERNAME")
	overrideString(&c.Sync.Schedule, "SYNC_SCHEDULE")
	overrideBool(&c.Sync.Enabled, "SYNC_ENABLED")
	overrideString(&c.Logging.Level, "LOG_LEVEL")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func overrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "true" || v == "1" || v == "yes"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port: invalid port %d", c.Service.Port)
	}
	if c.Typesense.URL == "" {
		return fmt.Errorf("typesense.url: is required")
	}
	if c.Search.DefaultPageSize < 1 || c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size: must be between 1 and %d", c.Search.MaxPageSize)
	}
	return nil
}
