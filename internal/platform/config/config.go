// Package config loads application configuration from environment variables.
// All variables use the NJIA_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	AI          AIConfig
	Log         LogConfig
	CatalogPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL
// disables the database; sessions then live in memory or the cache.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL disables
// the cache.
type CacheConfig struct {
	URL string
}

// AIConfig holds configuration for all AI providers.
type AIConfig struct {
	Google GoogleConfig
	Ollama OllamaConfig
}

// GoogleConfig holds Google Gemini provider settings.
type GoogleConfig struct {
	APIKey string
	Model  string
}

// OllamaConfig holds self-hosted Ollama settings.
type OllamaConfig struct {
	Enabled bool
	URL     string
	Model   string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with NJIA_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("NJIA_SERVER_PORT", 8080),
			Host: envStr("NJIA_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("NJIA_DATABASE_URL", ""),
			MaxConns: envInt("NJIA_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("NJIA_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL: envStr("NJIA_CACHE_URL", ""),
		},
		AI: AIConfig{
			Google: GoogleConfig{
				APIKey: envStr("NJIA_AI_GOOGLE_API_KEY", ""),
				Model:  envStr("NJIA_AI_GOOGLE_MODEL", "gemini-2.5-flash"),
			},
			Ollama: OllamaConfig{
				Enabled: envBool("NJIA_AI_OLLAMA_ENABLED", false),
				URL:     envStr("NJIA_AI_OLLAMA_URL", "http://localhost:11434"),
				Model:   envStr("NJIA_AI_OLLAMA_MODEL", "llama3.2"),
			},
		},
		Log: LogConfig{
			Level:  envStr("NJIA_LOG_LEVEL", "info"),
			Format: envStr("NJIA_LOG_FORMAT", "json"),
		},
		CatalogPath: envStr("NJIA_CATALOG_PATH", ""),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if !c.HasAIProvider() {
		return fmt.Errorf("at least one AI provider must be configured")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("NJIA_SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}

	return nil
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.Google.APIKey != "" || c.AI.Ollama.Enabled
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
