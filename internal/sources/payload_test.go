package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/godeals/internal/sources"
)

const recordJSON = `{"title":"Air Max 90","brand":"Nike","salePrice":"$79.99","price":130,"store":"Foot Locker","url":"https://example.com/p/1"}`

func TestExtractPinnedShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape string
		body  string
	}{
		{"top-level array", sources.ShapeTopLevelArray, `[` + recordJSON + `]`},
		{"deals envelope", sources.ShapeDeals, `{"deals":[` + recordJSON + `]}`},
		{"items envelope", sources.ShapeItems, `{"items":[` + recordJSON + `]}`},
		{"output.deals envelope", sources.ShapeOutputDeals, `{"output":{"deals":[` + recordJSON + `]}}`},
		{"data.deals envelope", sources.ShapeDataDeals, `{"data":{"deals":[` + recordJSON + `]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := sources.Extract([]byte(tt.body), tt.shape)
			require.NoError(t, err)
			require.Len(t, payload.Records, 1)
			assert.Equal(t, "Air Max 90", payload.Records[0].Title)
			assert.Equal(t, "$79.99", payload.Records[0].SalePrice.String())
		})
	}
}

func TestExtractSniffing(t *testing.T) {
	t.Run("sniffs array", func(t *testing.T) {
		payload, err := sources.Extract([]byte(`[`+recordJSON+`]`), "")
		require.NoError(t, err)
		assert.Len(t, payload.Records, 1)
	})

	t.Run("sniffs nested envelope", func(t *testing.T) {
		payload, err := sources.Extract([]byte(`{"output":{"deals":[`+recordJSON+`]}}`), "")
		require.NoError(t, err)
		assert.Len(t, payload.Records, 1)
	})

	t.Run("sniffs pointer-only response", func(t *testing.T) {
		payload, err := sources.Extract([]byte(`{"blobUrl":"https://blobs.example.com/x.json"}`), "")
		require.NoError(t, err)
		assert.Empty(t, payload.Records)
		assert.Equal(t, "https://blobs.example.com/x.json", payload.BlobURL)
	})

	t.Run("unknown object shape fails", func(t *testing.T) {
		_, err := sources.Extract([]byte(`{"products":[]}`), "")
		assert.ErrorIs(t, err, sources.ErrUnknownPayloadShape)
	})

	t.Run("invalid json fails", func(t *testing.T) {
		_, err := sources.Extract([]byte(`{nope`), "")
		assert.Error(t, err)
	})
}

func TestExtractUnknownPinnedShape(t *testing.T) {
	_, err := sources.Extract([]byte(`[]`), "csv")
	assert.ErrorIs(t, err, sources.ErrUnknownPayloadShape)
}

func TestExtractCarriesBreakdown(t *testing.T) {
	body := `{
		"deals": [` + recordJSON + `],
		"scraperResults": [
			{"scraper": "sub-a", "ok": true, "count": 1}
		]
	}`

	payload, err := sources.Extract([]byte(body), sources.ShapeDeals)
	require.NoError(t, err)
	require.Len(t, payload.Breakdown, 1)
	assert.Equal(t, "sub-a", payload.Breakdown[0].Scraper)
}

func TestExtractStringAndNumberPrices(t *testing.T) {
	body := `[{"title":"A","salePrice":59.99,"price":"$100","store":"S","url":"https://e.com/1"}]`

	payload, err := sources.Extract([]byte(body), sources.ShapeTopLevelArray)
	require.NoError(t, err)
	require.Len(t, payload.Records, 1)
	assert.Equal(t, "59.99", payload.Records[0].SalePrice.String())
	assert.Equal(t, "$100", payload.Records[0].Price.String())
}
