package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pgx-risk-server/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	// Set configuration file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/pgx-risk-server/")

	// Set environment variable prefix and enable automatic env binding
	viper.SetEnvPrefix("PGX_RISK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal configuration into struct
	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	// Enrichment defaults: disabled unless an API key is configured; the
	// deterministic template explanation always remains available.
	viper.SetDefault("enrichment.enabled", false)
	viper.SetDefault("enrichment.provider", "template")
	viper.SetDefault("enrichment.base_url", "")
	viper.SetDefault("enrichment.api_key", "")
	viper.SetDefault("enrichment.model", "gpt-4o-mini")
	viper.SetDefault("enrichment.timeout", "10s")
	viper.SetDefault("enrichment.rate_limit", 2)
	viper.SetDefault("enrichment.cache_size", 256)

	// Analysis defaults
	viper.SetDefault("analysis.max_upload_bytes", 5*1024*1024)
	viper.SetDefault("analysis.version", "1.0.0")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetEnrichmentConfig returns enrichment provider configuration
func (m *Manager) GetEnrichmentConfig() *domain.EnrichmentConfig {
	return &m.config.Enrichment
}

// GetAnalysisConfig returns pipeline configuration
func (m *Manager) GetAnalysisConfig() *domain.AnalysisConfig {
	return &m.config.Analysis
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	// Validate server configuration
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	// Validate enrichment configuration
	if config.Enrichment.Enabled {
		if config.Enrichment.Provider != "openai" && config.Enrichment.Provider != "template" {
			return fmt.Errorf("invalid enrichment provider: %s", config.Enrichment.Provider)
		}
		if config.Enrichment.Provider == "openai" && config.Enrichment.APIKey == "" {
			return fmt.Errorf("enrichment API key is required when the openai provider is enabled")
		}
	}

	// Validate analysis configuration
	if config.Analysis.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload size: %d", config.Analysis.MaxUploadBytes)
	}
	if config.Analysis.Version == "" {
		return fmt.Errorf("analysis version is required")
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
