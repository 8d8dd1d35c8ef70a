package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
	Output string `mapstructure:"output"`
}

// EnrichmentConfig represents the optional explanation-enrichment provider
// configuration. With Enabled false or an empty APIKey the deterministic
// template provider is used exclusively.
type EnrichmentConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Provider  string        `mapstructure:"provider"` // "openai" or "template"
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit int           `mapstructure:"rate_limit"` // requests per second
	CacheSize int           `mapstructure:"cache_size"`
}

// AnalysisConfig represents pipeline-level configuration
type AnalysisConfig struct {
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	Version        string `mapstructure:"version"`
}
