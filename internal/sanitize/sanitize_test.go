package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/logger"
	"github.com/jonesrussell/godeals/internal/sanitize"
)

func newSanitizer() *sanitize.Sanitizer {
	return sanitize.NewSanitizer(sanitize.DefaultRegistry(), logger.NewNoOp())
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain title untouched",
			input:    "Air Zoom Pegasus 40",
			expected: "Air Zoom Pegasus 40",
		},
		{
			name:     "leaked css rule removed with selector",
			input:    "Air Zoom Pegasus 40 .price-widget {color: red; font-weight: bold}",
			expected: "Air Zoom Pegasus 40",
		},
		{
			name:     "nested css rule removed",
			input:    "Runner X .m-hide { .inner { display: none; } }",
			expected: "Runner X",
		},
		{
			name:     "braced text that is not css survives",
			input:    "Gel-Kayano {Limited} Edition",
			expected: "Gel-Kayano {Limited} Edition",
		},
		{
			name:     "widget script junk truncated",
			input:    "Fresh Foam X window.dataLayer.push({event:'view'})",
			expected: "Fresh Foam X",
		},
		{
			name:     "html tags stripped keeping text",
			input:    "<span>Ultraboost</span> <b>Light</b>",
			expected: "Ultraboost Light",
		},
		{
			name:     "whitespace collapsed",
			input:    "Cloud\n\tMonster   2",
			expected: "Cloud Monster 2",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitize.CleanText(tt.input))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"dollar prefix", "$129.99", 129.99, true},
		{"bare number", "89.5", 89.5, true},
		{"thousands separator", "1,299.00", 1299.00, true},
		{"currency suffix", "149.99 USD", 149.99, true},
		{"integer", "75", 75, true},
		{"empty", "", 0, false},
		{"no digits", "call for price", 0, false},
		{"whitespace only", "   ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := sanitize.ParsePrice(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, value, 0.001)
		})
	}
}

func TestResolveURL(t *testing.T) {
	s := newSanitizer()

	tests := []struct {
		name     string
		store    string
		raw      string
		expected string
	}{
		{
			name:     "absolute url unchanged",
			store:    "Foot Locker",
			raw:      "https://www.footlocker.com/product/x.html",
			expected: "https://www.footlocker.com/product/x.html",
		},
		{
			name:     "protocol relative gets https",
			store:    "Foot Locker",
			raw:      "//images.footlocker.com/p/1.jpg",
			expected: "https://images.footlocker.com/p/1.jpg",
		},
		{
			name:     "relative resolves against store base",
			store:    "Foot Locker",
			raw:      "/product/nike-pegasus.html",
			expected: "https://www.footlocker.com/product/nike-pegasus.html",
		},
		{
			name:     "unknown store uses fallback base",
			store:    "Corner Shoe Shop",
			raw:      "/deal/1",
			expected: sanitize.FallbackBaseURL + "/deal/1",
		},
		{
			name:     "empty stays empty",
			store:    "Foot Locker",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.ResolveURL(tt.store, tt.raw))
		})
	}
}

func TestClean(t *testing.T) {
	s := newSanitizer()

	t.Run("normalizes a messy record", func(t *testing.T) {
		rec := &domain.CandidateRecord{
			Title:     "SALE: <b>Air Max 90</b>\n\t.widget {display: none;}",
			Brand:     "Nike",
			Model:     "Air Max 90",
			SalePrice: domain.FlexValue("$79.99"),
			Price:     domain.FlexValue("130"),
			Store:     "Foot Locker",
			URL:       "/product/air-max-90.html",
			Image:     "//img.footlocker.com/am90.jpg",
		}

		entry, ok := s.Clean(rec)
		require.True(t, ok)
		assert.Equal(t, "Air Max 90", entry.Title)
		assert.Equal(t, "Nike", entry.Brand)
		assert.InDelta(t, 79.99, entry.SalePrice, 0.001)
		assert.InDelta(t, 130.0, entry.Price, 0.001)
		assert.Equal(t, "https://www.footlocker.com/product/air-max-90.html", entry.URL)
		assert.Equal(t, "https://img.footlocker.com/am90.jpg", entry.Image)
	})

	t.Run("strips promo prefix", func(t *testing.T) {
		rec := &domain.CandidateRecord{
			Title:     "Clearance! Gel-Nimbus 25",
			SalePrice: domain.FlexValue("99"),
			Price:     domain.FlexValue("160"),
			Store:     "ASICS",
			URL:       "https://www.asics.com/n25",
		}

		entry, ok := s.Clean(rec)
		require.True(t, ok)
		assert.Equal(t, "Gel-Nimbus 25", entry.Title)
	})

	t.Run("defaults missing brand to Unknown", func(t *testing.T) {
		rec := &domain.CandidateRecord{
			Title:     "Speedcross 6",
			SalePrice: domain.FlexValue("95"),
			Price:     domain.FlexValue("145"),
			Store:     "REI",
			URL:       "https://www.rei.com/sc6",
		}

		entry, ok := s.Clean(rec)
		require.True(t, ok)
		assert.Equal(t, domain.UnknownBrand, entry.Brand)
	})

	t.Run("rejects record whose title is only junk", func(t *testing.T) {
		rec := &domain.CandidateRecord{
			Title:     ".product-card {margin: 0; padding: 0;}",
			SalePrice: domain.FlexValue("50"),
			Price:     domain.FlexValue("100"),
			Store:     "Foot Locker",
			URL:       "https://www.footlocker.com/x",
		}

		entry, ok := s.Clean(rec)
		assert.False(t, ok)
		assert.Nil(t, entry)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		rec := &domain.CandidateRecord{
			Title: "   ",
			Store: "Foot Locker",
		}

		_, ok := s.Clean(rec)
		assert.False(t, ok)
	})

	t.Run("rejects nil record", func(t *testing.T) {
		_, ok := s.Clean(nil)
		assert.False(t, ok)
	})

	t.Run("accepts numeric wire prices", func(t *testing.T) {
		rec := &domain.CandidateRecord{
			Title:     "Pegasus Trail 4",
			SalePrice: domain.FlexValue("89.97"),
			Price:     domain.FlexValue("140"),
			Store:     "Nike",
			URL:       "https://www.nike.com/pt4",
		}

		entry, ok := s.Clean(rec)
		require.True(t, ok)
		assert.InDelta(t, 89.97, entry.SalePrice, 0.001)
		assert.InDelta(t, 140.0, entry.Price, 0.001)
	})
}
