// Package sources provides source collector configuration and fetching.
// Each source is an independent retailer-specific collector exposing either
// a readable JSON artifact or a triggerable endpoint returning JSON.
package sources

import "time"

// Mode describes how a source's records are obtained.
type Mode string

const (
	// ModeEndpoint invokes the collector endpoint directly.
	ModeEndpoint Mode = "endpoint"
	// ModeBlob reads a precomputed artifact.
	ModeBlob Mode = "blob"
)

// Known payload shapes. A source config may pin one; when empty, the
// fetcher falls back to best-effort shape sniffing.
const (
	// ShapeTopLevelArray is a bare top-level CandidateRecord array.
	ShapeTopLevelArray = "topLevelArray"
	// ShapeDeals is `{"deals": [...]}`.
	ShapeDeals = "deals"
	// ShapeItems is `{"items": [...]}`.
	ShapeItems = "items"
	// ShapeOutputDeals is `{"output": {"deals": [...]}}`.
	ShapeOutputDeals = "outputDeals"
	// ShapeDataDeals is `{"data": {"deals": [...]}}`.
	ShapeDataDeals = "dataDeals"
)

// Config represents one source collector configuration.
type Config struct {
	// Name is the collector name used in run summaries and history.
	Name string `mapstructure:"name"`
	// Store is the retailer the collector covers.
	Store string `mapstructure:"store"`
	// Mode selects artifact read vs direct endpoint invocation.
	Mode Mode `mapstructure:"mode"`
	// URL is the artifact or endpoint URL.
	URL string `mapstructure:"url"`
	// Shape pins the payload shape adapter; empty means sniff.
	Shape string `mapstructure:"shape"`
	// Timeout bounds the fetch; zero uses the pipeline default.
	Timeout time.Duration `mapstructure:"timeout"`
	// Headers are extra request headers for the endpoint.
	Headers map[string]string `mapstructure:"headers"`
	// Enabled toggles the source; disabled sources are skipped entirely.
	Enabled *bool `mapstructure:"enabled"`
}

// IsEnabled reports whether the source should be fetched. Sources are
// enabled unless explicitly disabled.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
