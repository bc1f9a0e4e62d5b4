package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/logger"
)

// ErrPointerLoop indicates a blob pointer led to another pointer. Only one
// level of indirection is followed.
var ErrPointerLoop = errors.New("blob pointer resolved to another pointer")

// maxResponseBytes caps how much of a source response is read.
const maxResponseBytes = 32 << 20

// defaultFetchTimeout is used when neither the source nor the caller set one.
const defaultFetchTimeout = 45 * time.Second

// Fetcher obtains candidate records from configured sources. All failures
// are captured in the returned SourceRun; a Fetch never aborts the batch.
type Fetcher struct {
	httpClient     *http.Client
	defaultTimeout time.Duration
	logger         logger.Interface
}

// NewFetcher creates a new Fetcher. If httpClient is nil a default client
// is used; per-source timeouts are applied through context deadlines.
func NewFetcher(httpClient *http.Client, defaultTimeout time.Duration, log logger.Interface) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if defaultTimeout <= 0 {
		defaultTimeout = defaultFetchTimeout
	}
	return &Fetcher{
		httpClient:     httpClient,
		defaultTimeout: defaultTimeout,
		logger:         log,
	}
}

// Fetch obtains one source's candidate records. The returned SourceRun
// always describes the outcome, success or failure; on failure Records is
// nil and run.Error carries the message.
func (f *Fetcher) Fetch(ctx context.Context, cfg Config) ([]domain.CandidateRecord, domain.SourceRun) {
	start := time.Now()

	run := domain.SourceRun{
		Scraper: cfg.Name,
		Via:     domain.ViaEndpoint,
	}
	if cfg.Mode == ModeBlob {
		run.Via = domain.ViaBlob
		run.BlobURL = cfg.URL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	records, payload, err := f.fetchAndExtract(ctx, cfg)

	run.DurationMs = time.Since(start).Milliseconds()
	run.Timestamp = time.Now().UTC().Format(time.RFC3339)

	if err != nil {
		run.Error = err.Error()
		f.logger.Warn("Source fetch failed",
			"source", cfg.Name,
			"error", err)
		return nil, run
	}

	// Default the store so downstream keys are stable even when the
	// collector omits it.
	for i := range records {
		if records[i].Store == "" {
			records[i].Store = cfg.Store
		}
	}

	run.OK = true
	run.Count = len(records)
	if payload != nil {
		run.Breakdown = payload.Breakdown
		if payload.BlobURL != "" {
			run.Via = domain.ViaBlob
			run.BlobURL = payload.BlobURL
		}
	}

	f.logger.Debug("Source fetched",
		"source", cfg.Name,
		"count", run.Count,
		"via", run.Via,
		"duration_ms", run.DurationMs)

	return records, run
}

// fetchAndExtract fetches the source payload and follows at most one level
// of blob pointer indirection.
func (f *Fetcher) fetchAndExtract(ctx context.Context, cfg Config) ([]domain.CandidateRecord, *Payload, error) {
	data, err := f.get(ctx, cfg.URL, cfg.Headers)
	if err != nil {
		return nil, nil, err
	}

	payload, err := Extract(data, cfg.Shape)
	if err != nil {
		return nil, nil, err
	}

	if len(payload.Records) > 0 || payload.BlobURL == "" {
		return payload.Records, payload, nil
	}

	// The endpoint only returned a pointer to the real artifact.
	pointed, err := f.get(ctx, payload.BlobURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to follow blob pointer: %w", err)
	}

	resolved, err := Extract(pointed, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode pointed artifact: %w", err)
	}
	if len(resolved.Records) == 0 && resolved.BlobURL != "" {
		return nil, nil, ErrPointerLoop
	}

	resolved.BlobURL = payload.BlobURL
	if resolved.Breakdown == nil {
		resolved.Breakdown = payload.Breakdown
	}
	return resolved.Records, resolved, nil
}

// get performs one HTTP GET and reads the bounded response body.
func (f *Fetcher) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := f.httpClient.Do(req) //nolint:gosec // G704: URL from config
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
