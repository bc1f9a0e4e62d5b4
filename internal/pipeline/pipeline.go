// Package pipeline implements the deal aggregation and normalization
// pipeline: concurrent source ingestion, sanitation, validation,
// deduplication, derived artifacts, and atomic persistence.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	pipelinecfg "github.com/jonesrussell/godeals/internal/config/pipeline"
	"github.com/jonesrussell/godeals/internal/dedupe"
	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/featured"
	"github.com/jonesrussell/godeals/internal/history"
	"github.com/jonesrussell/godeals/internal/logger"
	"github.com/jonesrussell/godeals/internal/metrics"
	"github.com/jonesrussell/godeals/internal/sanitize"
	"github.com/jonesrussell/godeals/internal/sources"
	"github.com/jonesrussell/godeals/internal/stats"
	"github.com/jonesrussell/godeals/internal/storage"
	"github.com/jonesrussell/godeals/internal/validate"
)

const artifactContentType = "application/json"

// Params holds the dependencies for creating a Pipeline.
type Params struct {
	Config  *pipelinecfg.Config
	Sources []sources.Config
	Fetcher *sources.Fetcher
	Store   storage.Interface
	Metrics *metrics.Collector
	Logger  logger.Interface
	// Now is the clock; nil means time.Now. Tests inject fixed times to
	// pin the featured set and history dates.
	Now func() time.Time
}

// Pipeline runs the full aggregation cycle. Each invocation recomputes
// everything from scratch; persistence is overwrite-by-key.
type Pipeline struct {
	cfg       *pipelinecfg.Config
	sources   []sources.Config
	fetcher   *sources.Fetcher
	sanitizer *sanitize.Sanitizer
	filter    *validate.Filter
	store     storage.Interface
	metrics   *metrics.Collector
	logger    logger.Interface
	now       func() time.Time
}

// New creates a new Pipeline.
func New(p Params) (*Pipeline, error) {
	if p.Store == nil {
		return nil, errors.New("storage is required")
	}
	if p.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if p.Config == nil {
		p.Config = pipelinecfg.NewConfig()
	}
	if p.Fetcher == nil {
		p.Fetcher = sources.NewFetcher(http.DefaultClient, p.Config.SourceTimeout, p.Logger)
	}
	if p.Now == nil {
		p.Now = time.Now
	}

	return &Pipeline{
		cfg:       p.Config,
		sources:   p.Sources,
		fetcher:   p.Fetcher,
		sanitizer: sanitize.NewSanitizer(sanitize.DefaultRegistry(), p.Logger),
		filter:    validate.NewFilter(p.Config),
		store:     p.Store,
		metrics:   p.Metrics,
		logger:    p.Logger,
		now:       p.Now,
	}, nil
}

// fetchResult pairs one source's records with its run outcome, in config
// order so the raw union is reproducible.
type fetchResult struct {
	records []domain.CandidateRecord
	run     domain.SourceRun
}

// Run executes one full pipeline cycle and returns its summary. Per-source
// and per-record failures are absorbed; only compute or persistence
// failures surface as an error.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunSummary, error) {
	start := p.now()
	runID := uuid.NewString()
	log := p.logger.WithRunID(runID)

	log.Info("Pipeline run started", "sources", len(p.enabledSources()))

	results := p.fetchAll(ctx)

	runs := make([]domain.SourceRun, 0, len(results))
	var raw []domain.CandidateRecord
	for _, res := range results {
		runs = append(runs, res.run)
		raw = append(raw, res.records...)
		if p.metrics != nil {
			status := "ok"
			if !res.run.OK {
				status = "error"
			}
			p.metrics.SourceFetches.WithLabelValues(res.run.Scraper, status).Inc()
		}
	}

	entries, rejected := p.sanitizeAndFilter(raw)
	deduped := dedupe.Dedupe(entries)
	duplicates := len(entries) - len(deduped)

	// Shuffle before the stable sort so equal-discount ties do not keep a
	// systematic source-order bias, then order by discount descending.
	rand.Shuffle(len(deduped), func(i, j int) {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	})
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].DiscountPercent() > deduped[j].DiscountPercent()
	})

	now := p.now().UTC()
	dayUTC := now.Format("2006-01-02")

	statsSnapshot := stats.Compute(deduped, p.expectedStores(), p.cfg.TopBrands, now)
	featuredDeals := featured.Select(deduped, dayUTC, p.cfg.FeaturedCount)
	ledger := history.Append(p.loadHistory(ctx, log), runs, dayUTC, p.cfg.HistoryDays, now)

	artifacts, err := p.encodeArtifacts(raw, deduped, runs, statsSnapshot, featuredDeals, ledger, now, dayUTC)
	if err != nil {
		p.countRun("error")
		return nil, fmt.Errorf("failed to encode artifacts: %w", err)
	}

	if persistErr := p.persist(ctx, artifacts); persistErr != nil {
		p.countRun("error")
		return nil, persistErr
	}

	duration := p.now().Sub(start)
	if p.metrics != nil {
		p.metrics.CatalogDeals.Set(float64(len(deduped)))
		p.metrics.RecordsRejected.Add(float64(rejected))
		p.metrics.RunDuration.Observe(duration.Seconds())
	}
	p.countRun("ok")

	summary := &domain.RunSummary{
		RunID:      runID,
		StartedAt:  start.UTC().Format(time.RFC3339),
		DurationMs: duration.Milliseconds(),
		Sources:    runs,
		RawCount:   len(raw),
		TotalDeals: len(deduped),
		Rejected:   rejected,
		Duplicates: duplicates,
		Artifacts:  artifactKeys(),
	}

	log.Info("Pipeline run completed",
		"total_deals", summary.TotalDeals,
		"raw_count", summary.RawCount,
		"rejected", summary.Rejected,
		"duplicates", summary.Duplicates,
		"duration_ms", summary.DurationMs)

	return summary, nil
}

// fetchAll issues every enabled source fetch concurrently and waits for
// all of them to settle. One source's failure never aborts the batch.
func (p *Pipeline) fetchAll(ctx context.Context) []fetchResult {
	enabled := p.enabledSources()
	results := make([]fetchResult, len(enabled))

	var wg sync.WaitGroup
	for i, src := range enabled {
		wg.Add(1)
		go func(i int, src sources.Config) {
			defer wg.Done()
			records, run := p.fetcher.Fetch(ctx, src)
			results[i] = fetchResult{records: records, run: run}
		}(i, src)
	}
	wg.Wait()

	return results
}

// enabledSources filters the configured sources to the enabled ones.
func (p *Pipeline) enabledSources() []sources.Config {
	out := make([]sources.Config, 0, len(p.sources))
	for _, src := range p.sources {
		if src.IsEnabled() {
			out = append(out, src)
		}
	}
	return out
}

// expectedStores lists the store of every enabled source, deduplicated.
func (p *Pipeline) expectedStores() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, src := range p.enabledSources() {
		if _, ok := seen[src.Store]; ok {
			continue
		}
		seen[src.Store] = struct{}{}
		out = append(out, src.Store)
	}
	return out
}

// sanitizeAndFilter cleans each raw record and applies the validity rules,
// returning accepted entries and the silent rejection count.
func (p *Pipeline) sanitizeAndFilter(raw []domain.CandidateRecord) ([]domain.CatalogEntry, int) {
	entries := make([]domain.CatalogEntry, 0, len(raw))
	rejected := 0
	for i := range raw {
		entry, ok := p.sanitizer.Clean(&raw[i])
		if !ok {
			rejected++
			continue
		}
		if !p.filter.Valid(entry) {
			rejected++
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, rejected
}

// loadHistory reads the prior ledger. A missing or unreadable ledger
// degrades to an empty one; history restarts rather than failing the run.
func (p *Pipeline) loadHistory(ctx context.Context, log logger.Interface) *domain.HistoryLedger {
	data, err := p.store.Get(ctx, domain.KeyHistory)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("Failed to read history ledger, starting fresh", "error", err)
		}
		return nil
	}

	var ledger domain.HistoryLedger
	if unmarshalErr := json.Unmarshal(data, &ledger); unmarshalErr != nil {
		log.Warn("Failed to decode history ledger, starting fresh", "error", unmarshalErr)
		return nil
	}
	return &ledger
}

// encodeArtifacts marshals every artifact before any write happens, so an
// encoding failure leaves the store untouched.
func (p *Pipeline) encodeArtifacts(
	raw []domain.CandidateRecord,
	deals []domain.CatalogEntry,
	runs []domain.SourceRun,
	statsSnapshot *domain.StatsSnapshot,
	featuredDeals []domain.CatalogEntry,
	ledger *domain.HistoryLedger,
	now time.Time,
	dayUTC string,
) (map[string][]byte, error) {
	timestamp := now.Format(time.RFC3339)

	catalog := domain.Catalog{
		LastUpdated:    timestamp,
		TotalDeals:     len(deals),
		DealsByStore:   countByStore(deals),
		ScraperResults: runs,
		Deals:          deals,
	}

	rawCatalog := domain.RawCatalog{
		LastUpdated:    timestamp,
		TotalDeals:     len(raw),
		DealsByStore:   countRawByStore(raw),
		ScraperResults: runs,
		Deals:          raw,
	}

	featuredSet := domain.FeaturedSet{
		LastUpdated: timestamp,
		DaySeedUTC:  dayUTC,
		Total:       len(featuredDeals),
		Deals:       featuredDeals,
	}

	artifacts := make(map[string][]byte, 5)
	for key, value := range map[string]any{
		domain.KeyCatalog:    catalog,
		domain.KeyCatalogRaw: rawCatalog,
		domain.KeyStats:      statsSnapshot,
		domain.KeyFeatured:   featuredSet,
		domain.KeyHistory:    ledger,
	} {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		artifacts[key] = data
	}

	return artifacts, nil
}

// persist writes the staged artifacts under their fixed keys.
func (p *Pipeline) persist(ctx context.Context, artifacts map[string][]byte) error {
	for _, key := range artifactKeys() {
		if err := p.store.Put(ctx, key, artifacts[key], artifactContentType); err != nil {
			return fmt.Errorf("failed to persist %s: %w", key, err)
		}
	}
	return nil
}

// artifactKeys returns the fixed keys in write order.
func artifactKeys() []string {
	return []string{
		domain.KeyCatalogRaw,
		domain.KeyCatalog,
		domain.KeyStats,
		domain.KeyFeatured,
		domain.KeyHistory,
	}
}

// countByStore tallies catalog entries per store.
func countByStore(deals []domain.CatalogEntry) map[string]int {
	out := make(map[string]int)
	for i := range deals {
		out[deals[i].Store]++
	}
	return out
}

// countRawByStore tallies raw candidate records per store.
func countRawByStore(raw []domain.CandidateRecord) map[string]int {
	out := make(map[string]int)
	for i := range raw {
		out[raw[i].Store]++
	}
	return out
}

// countRun records a run outcome metric.
func (p *Pipeline) countRun(status string) {
	if p.metrics != nil {
		p.metrics.RunsTotal.WithLabelValues(status).Inc()
	}
}
