package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/stats"
)

var testNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

func deal(store, brand string, salePrice, price float64) domain.CatalogEntry {
	return domain.CatalogEntry{
		Title:     "Runner",
		Brand:     brand,
		Model:     "M1",
		SalePrice: salePrice,
		Price:     price,
		Store:     store,
		URL:       "https://example.com/" + store + "/" + brand,
		Image:     "https://example.com/img.jpg",
	}
}

func healthy(store string, n int) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, n)
	for i := 0; i < n; i++ {
		e := deal(store, "Nike", 80, 120)
		e.URL = e.URL + string(rune('a'+i))
		out = append(out, e)
	}
	return out
}

func TestComputeTotals(t *testing.T) {
	entries := append(healthy("Foot Locker", 6), healthy("Finish Line", 5)...)

	snapshot := stats.Compute(entries, nil, 10, testNow)

	assert.Equal(t, 11, snapshot.TotalDeals)
	assert.Equal(t, "2026-08-27T12:00:00Z", snapshot.GeneratedAt)
	require.Contains(t, snapshot.Stores, "Foot Locker")
	require.Contains(t, snapshot.Stores, "Finish Line")
	assert.Equal(t, 6, snapshot.Stores["Foot Locker"].Count)
	assert.Equal(t, domain.HealthHealthy, snapshot.Stores["Foot Locker"].Health)
	assert.InDelta(t, 33.33, snapshot.Stores["Foot Locker"].AvgDiscountPct, 0.01)
	assert.InDelta(t, 40.0, snapshot.Stores["Foot Locker"].AvgSavings, 0.01)
}

func TestComputeExpectedStoreWithNoEntries(t *testing.T) {
	snapshot := stats.Compute(healthy("Foot Locker", 6), []string{"Foot Locker", "Nike"}, 10, testNow)

	require.Contains(t, snapshot.Stores, "Nike")
	nike := snapshot.Stores["Nike"]
	assert.Equal(t, 0, nike.Count)
	assert.Equal(t, domain.HealthCritical, nike.Health)
	assert.Equal(t, []string{"ZERO RESULTS"}, nike.Issues)
}

func TestComputeHealthThresholds(t *testing.T) {
	t.Run("unknown brand warning above 20 percent", func(t *testing.T) {
		entries := healthy("Foot Locker", 7)
		for i := 0; i < 3; i++ {
			entries[i].Brand = domain.UnknownBrand
		}

		snapshot := stats.Compute(entries, nil, 10, testNow)
		ss := snapshot.Stores["Foot Locker"]
		assert.Equal(t, domain.HealthWarning, ss.Health)
		assert.Equal(t, 3, ss.UnknownBrand)
	})

	t.Run("unknown brand critical above 50 percent", func(t *testing.T) {
		entries := healthy("Foot Locker", 8)
		for i := 0; i < 5; i++ {
			entries[i].Brand = ""
		}

		snapshot := stats.Compute(entries, nil, 10, testNow)
		assert.Equal(t, domain.HealthCritical, snapshot.Stores["Foot Locker"].Health)
	})

	t.Run("exactly at threshold does not warn", func(t *testing.T) {
		entries := healthy("Foot Locker", 10)
		for i := 0; i < 2; i++ {
			entries[i].Brand = domain.UnknownBrand
		}

		snapshot := stats.Compute(entries, nil, 10, testNow)
		assert.Equal(t, domain.HealthHealthy, snapshot.Stores["Foot Locker"].Health)
	})

	t.Run("missing image warning above 30 percent", func(t *testing.T) {
		entries := healthy("Foot Locker", 5)
		for i := 0; i < 2; i++ {
			entries[i].Image = ""
		}

		snapshot := stats.Compute(entries, nil, 10, testNow)
		ss := snapshot.Stores["Foot Locker"]
		assert.Equal(t, domain.HealthWarning, ss.Health)
		assert.Equal(t, 2, ss.MissingImage)
	})

	t.Run("low count warning below five entries", func(t *testing.T) {
		snapshot := stats.Compute(healthy("Foot Locker", 4), nil, 10, testNow)
		ss := snapshot.Stores["Foot Locker"]
		assert.Equal(t, domain.HealthWarning, ss.Health)
		assert.Contains(t, ss.Issues, "low count 4")
	})
}

func TestTopBrands(t *testing.T) {
	entries := []domain.CatalogEntry{
		deal("A", "Nike", 80, 120),
		deal("A", "Nike", 60, 100),
		deal("A", "Adidas", 70, 110),
		deal("A", "Adidas", 55, 100),
		deal("A", "Asics", 90, 150),
		deal("A", domain.UnknownBrand, 50, 100),
		deal("A", "", 50, 100),
	}

	snapshot := stats.Compute(entries, nil, 2, testNow)

	require.Len(t, snapshot.TopBrands, 2)
	// Nike and Adidas tie on count; ties break by name ascending.
	assert.Equal(t, "Adidas", snapshot.TopBrands[0].Brand)
	assert.Equal(t, "Nike", snapshot.TopBrands[1].Brand)
	assert.Equal(t, 2, snapshot.TopBrands[0].Count)
	assert.InDelta(t, 55.0, snapshot.TopBrands[0].MinPrice, 0.001)
	assert.InDelta(t, 70.0, snapshot.TopBrands[0].MaxPrice, 0.001)
}

func TestBestDeals(t *testing.T) {
	entries := []domain.CatalogEntry{
		deal("A", "Nike", 50, 100),   // 50% off, $50 savings
		deal("A", "Adidas", 90, 300), // 70% off, $210 savings
		deal("A", "Asics", 40, 60),   // 33% off, lowest price
		deal("A", "Brooks", 60, 200), // 70% off, tie on discount
	}

	snapshot := stats.Compute(entries, nil, 10, testNow)
	best := snapshot.Best

	require.NotNil(t, best.HighestDiscount)
	assert.Equal(t, "Adidas", best.HighestDiscount.Brand, "first maximal wins the tie")
	require.NotNil(t, best.HighestSavings)
	assert.Equal(t, "Adidas", best.HighestSavings.Brand)
	require.NotNil(t, best.LowestPrice)
	assert.Equal(t, "Asics", best.LowestPrice.Brand)
}

func TestPriceHistogram(t *testing.T) {
	entries := []domain.CatalogEntry{
		deal("A", "Nike", 25, 50),
		deal("A", "Nike", 49.99, 80),
		deal("A", "Nike", 50, 90),
		deal("A", "Nike", 99.99, 150),
		deal("A", "Nike", 100, 160),
		deal("A", "Nike", 149.99, 220),
		deal("A", "Nike", 150, 250),
		deal("A", "Nike", 400, 600),
	}

	snapshot := stats.Compute(entries, nil, 10, testNow)

	require.Len(t, snapshot.PriceHistogram, 4)
	assert.Equal(t, "$0-50", snapshot.PriceHistogram[0].Label)
	assert.Equal(t, 2, snapshot.PriceHistogram[0].Count)
	assert.Equal(t, 2, snapshot.PriceHistogram[1].Count)
	assert.Equal(t, 2, snapshot.PriceHistogram[2].Count)
	assert.Equal(t, 2, snapshot.PriceHistogram[3].Count)
}

func TestComputeEmptyCatalog(t *testing.T) {
	snapshot := stats.Compute(nil, nil, 10, testNow)

	assert.Equal(t, 0, snapshot.TotalDeals)
	assert.Empty(t, snapshot.Stores)
	assert.Empty(t, snapshot.TopBrands)
	assert.Nil(t, snapshot.Best.HighestDiscount)
}
