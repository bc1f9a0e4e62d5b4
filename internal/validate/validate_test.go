package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pipelinecfg "github.com/jonesrussell/godeals/internal/config/pipeline"
	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/validate"
)

func entry(title string, salePrice, price float64) *domain.CatalogEntry {
	return &domain.CatalogEntry{
		Title:     title,
		Brand:     "Nike",
		SalePrice: salePrice,
		Price:     price,
		Store:     "Foot Locker",
		URL:       "https://www.footlocker.com/p/1",
	}
}

func TestValid(t *testing.T) {
	f := validate.NewFilter(pipelinecfg.NewConfig())

	tests := []struct {
		name  string
		entry *domain.CatalogEntry
		valid bool
	}{
		{
			name:  "typical deal accepted",
			entry: entry("Air Max 90", 79.99, 130.00),
			valid: true,
		},
		{
			name:  "nil rejected",
			entry: nil,
			valid: false,
		},
		{
			name: "empty url rejected",
			entry: &domain.CatalogEntry{
				Title:     "Air Max 90",
				SalePrice: 79.99,
				Price:     130.00,
			},
			valid: false,
		},
		{
			name:  "zero sale price rejected",
			entry: entry("Air Max 90", 0, 130.00),
			valid: false,
		},
		{
			name:  "sale price above reference rejected",
			entry: entry("Air Max 90", 150.00, 130.00),
			valid: false,
		},
		{
			name:  "sale price equal to reference rejected",
			entry: entry("Air Max 90", 130.00, 130.00),
			valid: false,
		},
		{
			name:  "sale price below band floor rejected",
			entry: entry("Flip Flop", 9.99, 25.00),
			valid: false,
		},
		{
			name:  "sale price at band floor accepted",
			entry: entry("Water Shoe", 10.00, 20.00),
			valid: true,
		},
		{
			name:  "sale price above band ceiling rejected",
			entry: entry("Limited Jordan", 1050.00, 1500.00),
			valid: false,
		},
		{
			name:  "tiny discount rejected",
			entry: entry("Pegasus 40", 19.99, 20.00),
			valid: false,
		},
		{
			name:  "implausibly deep discount rejected",
			entry: entry("Pegasus 40", 12.00, 200.00),
			valid: false,
		},
		{
			name:  "apparel term rejected whole word",
			entry: entry("Nike Crew Sock 3-Pack", 15.00, 24.00),
			valid: false,
		},
		{
			name:  "hoodie rejected",
			entry: entry("Tech Fleece Hoodie", 65.00, 110.00),
			valid: false,
		},
		{
			name:  "excluded term inside a word accepted",
			entry: entry("Sockliner Pro Runner", 55.00, 90.00),
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, f.Valid(tt.entry))
		})
	}
}

func TestValidCustomBands(t *testing.T) {
	cfg := pipelinecfg.NewConfig()
	cfg.MinSalePrice = 50
	cfg.MaxDiscountPct = 60

	f := validate.NewFilter(cfg)

	assert.False(t, f.Valid(entry("Budget Runner", 30.00, 60.00)),
		"below the raised floor")
	assert.True(t, f.Valid(entry("Mid Runner", 80.00, 130.00)))
	assert.False(t, f.Valid(entry("Deep Cut", 60.00, 200.00)),
		"70% discount exceeds the lowered ceiling")
}
