// Package pipeline provides tunable settings for the aggregation pipeline.
package pipeline

import (
	"errors"
	"time"
)

// Default pipeline settings. The price and discount bands started life as
// retailer-layout workarounds, so they are configuration rather than
// hard-coded business rules.
const (
	defaultMinSalePrice   = 10.0
	defaultMaxSalePrice   = 1000.0
	defaultMinDiscountPct = 5.0
	defaultMaxDiscountPct = 90.0
	defaultFeaturedCount  = 12
	defaultHistoryDays    = 30
	defaultTopBrands      = 10
	defaultSourceTimeout  = 45 * time.Second
)

// Config holds pipeline-specific configuration settings.
type Config struct {
	// MinSalePrice is the lower bound of the accepted sale-price band.
	MinSalePrice float64 `yaml:"min_sale_price"`
	// MaxSalePrice is the upper bound of the accepted sale-price band.
	MaxSalePrice float64 `yaml:"max_sale_price"`
	// MinDiscountPct is the minimum accepted discount percentage.
	MinDiscountPct float64 `yaml:"min_discount_pct"`
	// MaxDiscountPct is the maximum accepted discount percentage.
	MaxDiscountPct float64 `yaml:"max_discount_pct"`
	// FeaturedCount is the size cap of the daily featured set.
	FeaturedCount int `yaml:"featured_count"`
	// HistoryDays is the retention window of the scraper history ledger.
	HistoryDays int `yaml:"history_days"`
	// TopBrands is the number of brands kept in the per-brand rollup.
	TopBrands int `yaml:"top_brands"`
	// SourceTimeout bounds each source fetch.
	SourceTimeout time.Duration `yaml:"source_timeout"`
	// Schedule is the cron expression for scheduled runs.
	Schedule string `yaml:"schedule"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		MinSalePrice:   defaultMinSalePrice,
		MaxSalePrice:   defaultMaxSalePrice,
		MinDiscountPct: defaultMinDiscountPct,
		MaxDiscountPct: defaultMaxDiscountPct,
		FeaturedCount:  defaultFeaturedCount,
		HistoryDays:    defaultHistoryDays,
		TopBrands:      defaultTopBrands,
		SourceTimeout:  defaultSourceTimeout,
		Schedule:       "@daily",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MinSalePrice < 0 || c.MaxSalePrice <= c.MinSalePrice {
		return errors.New("invalid sale price band")
	}
	if c.MinDiscountPct < 0 || c.MaxDiscountPct <= c.MinDiscountPct || c.MaxDiscountPct > 100 {
		return errors.New("invalid discount band")
	}
	if c.FeaturedCount <= 0 {
		return errors.New("featured count must be positive")
	}
	if c.HistoryDays <= 0 {
		return errors.New("history days must be positive")
	}
	return nil
}
