// Package stats computes catalog-wide, per-store, and per-brand aggregates
// plus per-store health over one catalog snapshot. Everything here is a
// pure function of its inputs.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonesrussell/godeals/internal/domain"
)

// Health thresholds, in percent of a store's entries except minStoreCount.
const (
	warnUnknownBrandPct     = 20.0
	criticalUnknownBrandPct = 50.0
	warnMissingImagePct     = 30.0
	warnMissingURLPct       = 10.0
	warnMissingModelPct     = 30.0
	minStoreCount           = 5
)

// histogram bands over sale price.
var bandLabels = []string{"$0-50", "$50-100", "$100-150", "$150+"}

// Compute derives a StatsSnapshot from a catalog snapshot.
// expectedStores lists every store a configured source should have fed;
// expected stores with no entries are classified critical. topBrands caps
// the per-brand rollup.
func Compute(entries []domain.CatalogEntry, expectedStores []string, topBrands int, now time.Time) *domain.StatsSnapshot {
	snapshot := &domain.StatsSnapshot{
		GeneratedAt:    now.UTC().Format(time.RFC3339),
		TotalDeals:     len(entries),
		Stores:         make(map[string]*domain.StoreStats),
		PriceHistogram: make([]domain.PriceBand, len(bandLabels)),
	}
	for i, label := range bandLabels {
		snapshot.PriceHistogram[i] = domain.PriceBand{Label: label}
	}

	// Seed expected stores so silent sources still show up.
	for _, store := range expectedStores {
		if _, ok := snapshot.Stores[store]; !ok {
			snapshot.Stores[store] = &domain.StoreStats{}
		}
	}

	type storeAccum struct {
		discountSum float64
		savingsSum  float64
	}
	storeSums := make(map[string]*storeAccum)

	brands := make(map[string]*brandAccum)

	for i := range entries {
		e := &entries[i]

		ss, ok := snapshot.Stores[e.Store]
		if !ok {
			ss = &domain.StoreStats{}
			snapshot.Stores[e.Store] = ss
		}
		sums, ok := storeSums[e.Store]
		if !ok {
			sums = &storeAccum{}
			storeSums[e.Store] = sums
		}

		ss.Count++
		sums.discountSum += e.DiscountPercent()
		sums.savingsSum += e.Savings()

		if e.Brand == "" || e.Brand == domain.UnknownBrand {
			ss.UnknownBrand++
		}
		if !e.HasImage() {
			ss.MissingImage++
		}
		if e.URL == "" {
			ss.MissingURL++
		}
		if e.Model == "" {
			ss.MissingModel++
		}
		if e.Price <= 0 {
			ss.MissingPrice++
		}

		if e.Brand != "" && e.Brand != domain.UnknownBrand {
			ba, ok := brands[e.Brand]
			if !ok {
				ba = &brandAccum{minPrice: e.SalePrice, maxPrice: e.SalePrice}
				brands[e.Brand] = ba
			}
			ba.count++
			ba.discountSum += e.DiscountPercent()
			if e.SalePrice < ba.minPrice {
				ba.minPrice = e.SalePrice
			}
			if e.SalePrice > ba.maxPrice {
				ba.maxPrice = e.SalePrice
			}
		}

		bucket := bandFor(e.SalePrice)
		snapshot.PriceHistogram[bucket].Count++
	}

	// Per-store averages and health.
	for store, ss := range snapshot.Stores {
		if sums := storeSums[store]; sums != nil && ss.Count > 0 {
			ss.AvgDiscountPct = round2(sums.discountSum / float64(ss.Count))
			ss.AvgSavings = round2(sums.savingsSum / float64(ss.Count))
		}
		classify(ss)
	}

	snapshot.TopBrands = topBrandStats(brands, topBrands)
	snapshot.Best = bestDeals(entries)

	return snapshot
}

// classify assigns the health status for a store's rollup. A store may
// list multiple issues; status reflects the most severe one.
func classify(ss *domain.StoreStats) {
	if ss.Count == 0 {
		ss.Health = domain.HealthCritical
		ss.Issues = []string{"ZERO RESULTS"}
		return
	}

	total := float64(ss.Count)
	pct := func(n int) float64 { return float64(n) / total * 100 }

	critical := false
	var issues []string

	if p := pct(ss.UnknownBrand); p > criticalUnknownBrandPct {
		critical = true
		issues = append(issues, fmt.Sprintf("unknown brand %.0f%%", p))
	} else if p > warnUnknownBrandPct {
		issues = append(issues, fmt.Sprintf("unknown brand %.0f%%", p))
	}
	if p := pct(ss.MissingImage); p > warnMissingImagePct {
		issues = append(issues, fmt.Sprintf("missing image %.0f%%", p))
	}
	if p := pct(ss.MissingURL); p > warnMissingURLPct {
		issues = append(issues, fmt.Sprintf("missing url %.0f%%", p))
	}
	if p := pct(ss.MissingModel); p > warnMissingModelPct {
		issues = append(issues, fmt.Sprintf("missing model %.0f%%", p))
	}
	if ss.Count < minStoreCount {
		issues = append(issues, fmt.Sprintf("low count %d", ss.Count))
	}

	ss.Issues = issues
	switch {
	case critical:
		ss.Health = domain.HealthCritical
	case len(issues) > 0:
		ss.Health = domain.HealthWarning
	default:
		ss.Health = domain.HealthHealthy
	}
}

// brandAccum accumulates per-brand sums while walking the catalog.
type brandAccum struct {
	count       int
	discountSum float64
	minPrice    float64
	maxPrice    float64
}

// topBrandStats sorts brands by count descending (name ascending on ties)
// and keeps the top n.
func topBrandStats(brands map[string]*brandAccum, n int) []domain.BrandStats {
	out := make([]domain.BrandStats, 0, len(brands))
	for brand, ba := range brands {
		out = append(out, domain.BrandStats{
			Brand:          brand,
			Count:          ba.count,
			AvgDiscountPct: round2(ba.discountSum / float64(ba.count)),
			MinPrice:       ba.minPrice,
			MaxPrice:       ba.maxPrice,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Brand < out[j].Brand
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// bestDeals finds the single best entry per criterion, first-maximal on
// ties (strict improvement required to displace the current best).
func bestDeals(entries []domain.CatalogEntry) domain.BestDeals {
	var best domain.BestDeals
	var bestDiscount, bestSavings, bestValue float64
	lowestPrice := 0.0

	for i := range entries {
		e := &entries[i]

		if d := e.DiscountPercent(); best.HighestDiscount == nil || d > bestDiscount {
			bestDiscount = d
			best.HighestDiscount = ref(e)
		}
		if s := e.Savings(); best.HighestSavings == nil || s > bestSavings {
			bestSavings = s
			best.HighestSavings = ref(e)
		}
		if best.LowestPrice == nil || e.SalePrice < lowestPrice {
			lowestPrice = e.SalePrice
			best.LowestPrice = ref(e)
		}
		// Composite value: discount percent plus half the absolute savings.
		if v := e.DiscountPercent() + 0.5*e.Savings(); best.BestValue == nil || v > bestValue {
			bestValue = v
			best.BestValue = ref(e)
		}
	}

	return best
}

// ref copies an entry so snapshot pointers do not alias the input slice.
func ref(e *domain.CatalogEntry) *domain.CatalogEntry {
	c := *e
	return &c
}

// bandFor maps a sale price to its histogram bucket.
func bandFor(price float64) int {
	switch {
	case price < 50:
		return 0
	case price < 100:
		return 1
	case price < 150:
		return 2
	default:
		return 3
	}
}

// round2 rounds to two decimal places for stable artifact output.
func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
