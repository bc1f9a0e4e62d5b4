package common

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonesrussell/godeals/internal/config"
	"github.com/jonesrussell/godeals/internal/logger"
	"github.com/jonesrussell/godeals/internal/metrics"
	"github.com/jonesrussell/godeals/internal/pipeline"
	"github.com/jonesrussell/godeals/internal/sources"
	"github.com/jonesrussell/godeals/internal/storage"
)

// NewCommandDeps creates CommandDeps by loading config and creating logger.
// InitializeViper must have been called first (the root command does this).
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("invalid config: %w", validateErr)
	}

	logCfg := cfg.GetLoggingConfig()
	log, err := logger.New(&logger.Config{
		Level:       logger.Level(logCfg.Level),
		Development: logCfg.Debug,
		Encoding:    logCfg.Encoding,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// CreateStorage creates the MinIO-backed artifact store and ensures the
// bucket exists.
func CreateStorage(ctx context.Context, deps CommandDeps) (*storage.MinIOStore, error) {
	store, err := storage.NewMinIOStore(deps.Config.GetMinIOConfig(), deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}

	if bucketErr := store.EnsureBucket(ctx); bucketErr != nil {
		return nil, fmt.Errorf("ensure bucket: %w", bucketErr)
	}

	return store, nil
}

// CreatePipeline wires the full aggregation pipeline: sources, fetcher,
// storage, and metrics. The registerer may be nil to skip metrics.
func CreatePipeline(
	ctx context.Context,
	deps CommandDeps,
	reg prometheus.Registerer,
) (*pipeline.Pipeline, *storage.MinIOStore, error) {
	store, err := CreateStorage(ctx, deps)
	if err != nil {
		return nil, nil, err
	}

	loader := sources.NewLoader(deps.Config.GetSourcesFile())
	sourceConfigs, err := loader.LoadSources()
	if err != nil {
		return nil, nil, fmt.Errorf("load sources: %w", err)
	}

	pipelineCfg := deps.Config.GetPipelineConfig()

	var collector *metrics.Collector
	if reg != nil {
		collector = metrics.NewCollector(reg)
	}

	p, err := pipeline.New(pipeline.Params{
		Config:  pipelineCfg,
		Sources: sourceConfigs,
		Fetcher: sources.NewFetcher(nil, pipelineCfg.SourceTimeout, deps.Logger),
		Store:   store,
		Metrics: collector,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create pipeline: %w", err)
	}

	return p, store, nil
}
