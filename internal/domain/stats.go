package domain

// HealthStatus classifies a store's data quality for one run.
type HealthStatus string

const (
	// HealthHealthy means no quality issues were detected.
	HealthHealthy HealthStatus = "healthy"
	// HealthWarning means one or more soft thresholds were crossed.
	HealthWarning HealthStatus = "warning"
	// HealthCritical means the store returned nothing or is mostly unusable.
	HealthCritical HealthStatus = "critical"
)

// StoreStats is the per-store rollup inside a StatsSnapshot.
type StoreStats struct {
	Count          int          `json:"count"`
	AvgDiscountPct float64      `json:"avgDiscountPct"`
	AvgSavings     float64      `json:"avgSavings"`
	UnknownBrand   int          `json:"unknownBrand"`
	MissingImage   int          `json:"missingImage"`
	MissingURL     int          `json:"missingUrl"`
	MissingModel   int          `json:"missingModel"`
	MissingPrice   int          `json:"missingPrice"`
	Health         HealthStatus `json:"health"`
	Issues         []string     `json:"issues,omitempty"`
}

// BrandStats is the per-brand rollup inside a StatsSnapshot.
type BrandStats struct {
	Brand          string  `json:"brand"`
	Count          int     `json:"count"`
	AvgDiscountPct float64 `json:"avgDiscountPct"`
	MinPrice       float64 `json:"minPrice"`
	MaxPrice       float64 `json:"maxPrice"`
}

// BestDeals points at single catalog entries maximizing each criterion.
// Ties resolve to the first-seen entry in catalog order.
type BestDeals struct {
	HighestDiscount *CatalogEntry `json:"highestDiscount,omitempty"`
	HighestSavings  *CatalogEntry `json:"highestSavings,omitempty"`
	LowestPrice     *CatalogEntry `json:"lowestPrice,omitempty"`
	BestValue       *CatalogEntry `json:"bestValue,omitempty"`
}

// PriceBand is one fixed histogram bucket.
type PriceBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatsSnapshot is a pure derived aggregate over one catalog snapshot.
type StatsSnapshot struct {
	GeneratedAt    string                 `json:"generatedAt"`
	TotalDeals     int                    `json:"totalDeals"`
	Stores         map[string]*StoreStats `json:"stores"`
	TopBrands      []BrandStats           `json:"topBrands"`
	Best           BestDeals              `json:"best"`
	PriceHistogram []PriceBand            `json:"priceHistogram"`
}
