// Package config provides configuration management for the deal aggregation
// service. It handles loading, validation, and access to configuration values
// from YAML files and environment variables via Viper.
package config

import (
	"fmt"
	"time"

	"github.com/jonesrussell/godeals/internal/config/logging"
	miniocfg "github.com/jonesrussell/godeals/internal/config/minio"
	pipelinecfg "github.com/jonesrussell/godeals/internal/config/pipeline"
	"github.com/jonesrussell/godeals/internal/config/server"
	"github.com/spf13/viper"
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetServerConfig returns the server configuration.
	GetServerConfig() *server.Config
	// GetLoggingConfig returns the logging configuration.
	GetLoggingConfig() *logging.Config
	// GetMinIOConfig returns the MinIO configuration.
	GetMinIOConfig() *miniocfg.Config
	// GetPipelineConfig returns the pipeline configuration.
	GetPipelineConfig() *pipelinecfg.Config
	// GetSourcesFile returns the path to the sources configuration file.
	GetSourcesFile() string
	// Validate validates the configuration.
	Validate() error
}

// Server defaults
const (
	defaultServerAddress      = ":8060"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
	defaultSourcesFile        = "sources.yaml"
)

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// Server holds server-specific configuration
	Server *server.Config `yaml:"server"`
	// Logging holds logging configuration
	Logging *logging.Config `yaml:"logging"`
	// MinIO holds MinIO configuration for artifact persistence
	MinIO *miniocfg.Config `yaml:"minio"`
	// Pipeline holds pipeline tunables
	Pipeline *pipelinecfg.Config `yaml:"pipeline"`
	// SourcesFile is the path to the sources configuration file
	SourcesFile string `yaml:"sources_file"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.MinIO.Validate(); err != nil {
		return fmt.Errorf("minio: %w", err)
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}

// Load builds the application configuration from the global Viper state.
// InitializeViper must have been called first.
func Load() (*Config, error) {
	cfg := &Config{
		Server:      server.NewConfig(),
		Logging:     logging.NewConfig(),
		Pipeline:    pipelinecfg.NewConfig(),
		SourcesFile: defaultSourcesFile,
	}

	v := viper.GetViper()

	if v.IsSet("server.address") {
		cfg.Server.Address = v.GetString("server.address")
	}
	if v.IsSet("server.read_timeout") {
		cfg.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.idle_timeout") {
		cfg.Server.IdleTimeout = v.GetDuration("server.idle_timeout")
	}
	if v.IsSet("server.security_enabled") {
		cfg.Server.SecurityEnabled = v.GetBool("server.security_enabled")
	}
	if v.IsSet("server.api_key") {
		cfg.Server.APIKey = v.GetString("server.api_key")
	}

	if v.IsSet("logging.level") {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	if v.IsSet("logging.encoding") {
		cfg.Logging.Encoding = v.GetString("logging.encoding")
	}
	if v.IsSet("logging.debug") {
		cfg.Logging.Debug = v.GetBool("logging.debug")
	}

	cfg.MinIO = miniocfg.LoadFromViper(v)

	if v.IsSet("pipeline.min_sale_price") {
		cfg.Pipeline.MinSalePrice = v.GetFloat64("pipeline.min_sale_price")
	}
	if v.IsSet("pipeline.max_sale_price") {
		cfg.Pipeline.MaxSalePrice = v.GetFloat64("pipeline.max_sale_price")
	}
	if v.IsSet("pipeline.min_discount_pct") {
		cfg.Pipeline.MinDiscountPct = v.GetFloat64("pipeline.min_discount_pct")
	}
	if v.IsSet("pipeline.max_discount_pct") {
		cfg.Pipeline.MaxDiscountPct = v.GetFloat64("pipeline.max_discount_pct")
	}
	if v.IsSet("pipeline.featured_count") {
		cfg.Pipeline.FeaturedCount = v.GetInt("pipeline.featured_count")
	}
	if v.IsSet("pipeline.history_days") {
		cfg.Pipeline.HistoryDays = v.GetInt("pipeline.history_days")
	}
	if v.IsSet("pipeline.top_brands") {
		cfg.Pipeline.TopBrands = v.GetInt("pipeline.top_brands")
	}
	if v.IsSet("pipeline.source_timeout") {
		cfg.Pipeline.SourceTimeout = v.GetDuration("pipeline.source_timeout")
	}
	if v.IsSet("pipeline.schedule") {
		cfg.Pipeline.Schedule = v.GetString("pipeline.schedule")
	}

	if v.IsSet("sources_file") {
		cfg.SourcesFile = v.GetString("sources_file")
	}

	applyServerDefaults(cfg)

	return cfg, nil
}

// applyServerDefaults fills in server defaults not covered by NewConfig.
func applyServerDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultServerAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultServerIdleTimeout
	}
}

// GetServerConfig returns the server configuration.
func (c *Config) GetServerConfig() *server.Config {
	return c.Server
}

// GetLoggingConfig returns the logging configuration.
func (c *Config) GetLoggingConfig() *logging.Config {
	return c.Logging
}

// GetMinIOConfig returns the MinIO configuration.
func (c *Config) GetMinIOConfig() *miniocfg.Config {
	return c.MinIO
}

// GetPipelineConfig returns the pipeline configuration.
func (c *Config) GetPipelineConfig() *pipelinecfg.Config {
	return c.Pipeline
}

// GetSourcesFile returns the path to the sources configuration file.
func (c *Config) GetSourcesFile() string {
	return c.SourcesFile
}
