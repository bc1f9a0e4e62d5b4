package featured_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/featured"
)

// catalog builds n distinct entries with images and genuine discounts.
func catalog(n int) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, n)
	for i := 0; i < n; i++ {
		price := 100.0 + float64(i)*10
		out = append(out, domain.CatalogEntry{
			Title:     fmt.Sprintf("Runner %d", i),
			Brand:     "Nike",
			SalePrice: price * 0.6,
			Price:     price,
			Store:     "Foot Locker",
			URL:       fmt.Sprintf("https://example.com/p/%d", i),
			Image:     fmt.Sprintf("https://example.com/img/%d.jpg", i),
		})
	}
	return out
}

func urls(entries []domain.CatalogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.URL)
	}
	return out
}

func TestSelectDeterministic(t *testing.T) {
	entries := catalog(50)

	first := featured.Select(entries, "2026-08-27", 12)
	second := featured.Select(entries, "2026-08-27", 12)

	require.NotEmpty(t, first)
	assert.Equal(t, urls(first), urls(second),
		"same snapshot and date must produce the same set in the same order")
}

func TestSelectChangesWithDate(t *testing.T) {
	entries := catalog(50)

	today := featured.Select(entries, "2026-08-27", 12)
	tomorrow := featured.Select(entries, "2026-08-28", 12)

	assert.NotEqual(t, urls(today), urls(tomorrow),
		"different dates should produce a different set or order")
}

func TestSelectSizeAndUniqueness(t *testing.T) {
	entries := catalog(100)

	picks := featured.Select(entries, "2026-08-27", 12)

	assert.Len(t, picks, 12)

	seen := make(map[string]struct{})
	for _, e := range picks {
		_, dup := seen[e.URL]
		assert.False(t, dup, "url %s picked twice", e.URL)
		seen[e.URL] = struct{}{}
	}
}

func TestSelectSmallPool(t *testing.T) {
	entries := catalog(5)

	picks := featured.Select(entries, "2026-08-27", 12)

	assert.Len(t, picks, 5, "small pools return everything")
}

func TestSelectEmptyCatalog(t *testing.T) {
	assert.Nil(t, featured.Select(nil, "2026-08-27", 12))
}

func TestSelectSkipsEntriesWithoutImages(t *testing.T) {
	entries := catalog(40)
	for i := 20; i < 40; i++ {
		entries[i].Image = ""
	}

	picks := featured.Select(entries, "2026-08-27", 12)

	require.NotEmpty(t, picks)
	for _, e := range picks {
		assert.True(t, e.HasImage(), "featured entries must carry an image")
	}
}

func TestSelectCountFloor(t *testing.T) {
	entries := catalog(50)

	picks := featured.Select(entries, "2026-08-27", 1)

	assert.Len(t, picks, featured.DefaultCount,
		"counts below 3 fall back to the default")
}
