// Package minio provides MinIO configuration for artifact persistence.
package minio

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config represents MinIO configuration for the artifact store.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "minio:9000")
	Endpoint string `yaml:"endpoint"`
	// AccessKey for MinIO authentication
	AccessKey string `yaml:"access_key"`
	// SecretKey for MinIO authentication
	SecretKey string `yaml:"secret_key"`
	// UseSSL enables HTTPS for MinIO connections
	UseSSL bool `yaml:"use_ssl"`
	// Bucket is the bucket holding the pipeline artifacts
	Bucket string `yaml:"bucket"`
	// RequestTimeout is the timeout for get/put operations
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

const (
	// defaultRequestTimeout is the default timeout for get/put operations.
	defaultRequestTimeout = 30 * time.Second
)

// NewConfig returns a new MinIO configuration with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:       "localhost:9000",
		UseSSL:         false,
		Bucket:         "deal-artifacts",
		RequestTimeout: defaultRequestTimeout,
	}
}

// LoadFromViper loads MinIO configuration from Viper with environment variable overrides.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()

	if v.IsSet("minio.endpoint") {
		cfg.Endpoint = v.GetString("minio.endpoint")
	}
	if v.IsSet("minio.access_key") {
		cfg.AccessKey = v.GetString("minio.access_key")
	}
	if v.IsSet("minio.secret_key") {
		cfg.SecretKey = v.GetString("minio.secret_key")
	}
	if v.IsSet("minio.use_ssl") {
		cfg.UseSSL = v.GetBool("minio.use_ssl")
	}
	if v.IsSet("minio.bucket") {
		cfg.Bucket = v.GetString("minio.bucket")
	}
	if v.IsSet("minio.request_timeout") {
		cfg.RequestTimeout = v.GetDuration("minio.request_timeout")
	}

	// Environment variable overrides
	if v.IsSet("MINIO_ENDPOINT") {
		cfg.Endpoint = v.GetString("MINIO_ENDPOINT")
	}
	if v.IsSet("MINIO_ACCESS_KEY") {
		cfg.AccessKey = v.GetString("MINIO_ACCESS_KEY")
	}
	if v.IsSet("MINIO_SECRET_KEY") {
		cfg.SecretKey = v.GetString("MINIO_SECRET_KEY")
	}
	if v.IsSet("MINIO_BUCKET") {
		cfg.Bucket = v.GetString("MINIO_BUCKET")
	}

	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if c.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	return nil
}
