package domain

// FetchOrigin describes how a source's records were obtained.
type FetchOrigin string

const (
	// ViaBlob means the records came from a precomputed artifact.
	ViaBlob FetchOrigin = "blob"
	// ViaEndpoint means the source endpoint was invoked directly.
	ViaEndpoint FetchOrigin = "endpoint"
)

// SourceRun captures one source's ingestion outcome for a single pipeline run.
type SourceRun struct {
	// Scraper is the source collector name.
	Scraper string `json:"scraper"`
	// OK reports whether the fetch succeeded.
	OK bool `json:"ok"`
	// Count is the number of candidate records obtained.
	Count int `json:"count"`
	// DurationMs is the fetch duration in milliseconds.
	DurationMs int64 `json:"durationMs"`
	// Timestamp is when the fetch completed, RFC 3339 UTC.
	Timestamp string `json:"timestamp"`
	// Via records whether the source was read from an artifact or fetched.
	Via FetchOrigin `json:"via"`
	// BlobURL is the artifact the records were read from, when Via is "blob".
	BlobURL string `json:"blobUrl,omitempty"`
	// Error is the failure message for unsuccessful fetches.
	Error string `json:"error,omitempty"`
	// Breakdown carries per-sub-collector outcomes when the source payload
	// exposes one; used by the history tracker, never persisted directly.
	Breakdown []SourceRun `json:"-"`
}

// RunSummary is returned by the trigger surface after each pipeline run.
type RunSummary struct {
	// RunID uniquely identifies this invocation.
	RunID string `json:"runId"`
	// StartedAt is the run start time, RFC 3339 UTC.
	StartedAt string `json:"startedAt"`
	// DurationMs is the total run duration in milliseconds.
	DurationMs int64 `json:"durationMs"`
	// Sources lists per-source outcomes, including failures.
	Sources []SourceRun `json:"sources"`
	// RawCount is the size of the pre-pipeline union of candidate records.
	RawCount int `json:"rawCount"`
	// TotalDeals is the size of the published catalog.
	TotalDeals int `json:"totalDeals"`
	// Rejected is the number of records dropped by sanitation and validation.
	Rejected int `json:"rejected"`
	// Duplicates is the number of records merged away by deduplication.
	Duplicates int `json:"duplicates"`
	// Artifacts lists the persisted artifact keys.
	Artifacts []string `json:"artifacts"`
}
