package domain

// Artifact keys are fixed and fully overwritten on every run. Downstream
// consumers (browsing UI, alert matcher) read only these keys.
const (
	// KeyCatalog is the canonical deduplicated catalog.
	KeyCatalog = "deals/catalog.json"
	// KeyCatalogRaw is the pre-sanitize debug union of all sources.
	KeyCatalogRaw = "deals/catalog-raw.json"
	// KeyStats is the derived statistics snapshot.
	KeyStats = "deals/stats.json"
	// KeyFeatured is the daily featured subset.
	KeyFeatured = "deals/featured.json"
	// KeyHistory is the rolling per-collector outcome ledger.
	KeyHistory = "deals/scraper-history.json"
)

// HistoryVersion identifies the persisted ledger schema.
const HistoryVersion = 1

// HistoryMaxDays is the default retention window for the history ledger.
const HistoryMaxDays = 30

// Catalog is the canonical catalog artifact. It wholly replaces the prior
// snapshot on every run.
type Catalog struct {
	LastUpdated    string         `json:"lastUpdated"`
	TotalDeals     int            `json:"totalDeals"`
	DealsByStore   map[string]int `json:"dealsByStore"`
	ScraperResults []SourceRun    `json:"scraperResults"`
	Deals          []CatalogEntry `json:"deals"`
}

// RawCatalog is the pre-sanitize debug artifact: the raw union of every
// source's candidate records, in the catalog's shape.
type RawCatalog struct {
	LastUpdated    string            `json:"lastUpdated"`
	TotalDeals     int               `json:"totalDeals"`
	DealsByStore   map[string]int    `json:"dealsByStore"`
	ScraperResults []SourceRun       `json:"scraperResults"`
	Deals          []CandidateRecord `json:"deals"`
}

// FeaturedSet is the deterministic daily subset shown to end users.
type FeaturedSet struct {
	LastUpdated string         `json:"lastUpdated"`
	DaySeedUTC  string         `json:"daySeedUTC"`
	Total       int            `json:"total"`
	Deals       []CatalogEntry `json:"deals"`
}

// HistoryDay is one day's per-collector outcomes.
type HistoryDay struct {
	DayUTC      string      `json:"dayUTC"`
	GeneratedAt string      `json:"generatedAt"`
	Scrapers    []SourceRun `json:"scrapers"`
}

// HistoryLedger is the sole cross-run entity: a bounded rolling series of
// per-day collector outcomes, ascending by day.
type HistoryLedger struct {
	Version     int          `json:"version"`
	LastUpdated string       `json:"lastUpdated"`
	Days        []HistoryDay `json:"days"`
}
