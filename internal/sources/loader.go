package sources

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoSources indicates no sources were found in the configuration
	ErrNoSources = errors.New("no sources found in configuration")
	// ErrInvalidSourceFormat indicates the source format is invalid
	ErrInvalidSourceFormat = errors.New("invalid source format")
	// ErrMissingRequiredField indicates a required field is missing
	ErrMissingRequiredField = errors.New("missing required field")
)

// sourcesFile represents the structure of a sources YAML file.
type sourcesFile struct {
	Sources []map[string]any `yaml:"sources"`
}

// Loader handles loading and validating source configurations.
type Loader struct {
	configPath string
}

// NewLoader creates a new Loader instance.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// LoadSources loads and validates all sources from the configuration.
func (l *Loader) LoadSources() ([]Config, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if unmarshalErr := yaml.Unmarshal(data, &file); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSourceFormat, unmarshalErr)
	}

	if len(file.Sources) == 0 {
		return nil, ErrNoSources
	}

	configs := make([]Config, 0, len(file.Sources))
	for i, raw := range file.Sources {
		var cfg Config
		decoder, decErr := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &cfg,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
		})
		if decErr != nil {
			return nil, fmt.Errorf("failed to create decoder: %w", decErr)
		}
		if decodeErr := decoder.Decode(raw); decodeErr != nil {
			return nil, fmt.Errorf("%w: source %d: %w", ErrInvalidSourceFormat, i, decodeErr)
		}

		if validateErr := validateSource(&cfg); validateErr != nil {
			return nil, fmt.Errorf("source %d: %w", i, validateErr)
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}

// validateSource checks required fields and applies defaults.
func validateSource(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if cfg.Store == "" {
		return fmt.Errorf("%w: store", ErrMissingRequiredField)
	}
	if cfg.URL == "" {
		return fmt.Errorf("%w: url", ErrMissingRequiredField)
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return fmt.Errorf("%w: invalid url %q: %w", ErrInvalidSourceFormat, cfg.URL, err)
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeEndpoint
	}
	if cfg.Mode != ModeEndpoint && cfg.Mode != ModeBlob {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSourceFormat, cfg.Mode)
	}

	switch cfg.Shape {
	case "", ShapeTopLevelArray, ShapeDeals, ShapeItems, ShapeOutputDeals, ShapeDataDeals:
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidSourceFormat, cfg.Shape)
	}

	return nil
}
