// Package validate implements the validity filter: price-sanity and
// category-exclusion rules applied to sanitized records.
package validate

import (
	"regexp"
	"strings"

	pipelinecfg "github.com/jonesrussell/godeals/internal/config/pipeline"
	"github.com/jonesrussell/godeals/internal/domain"
)

// excludedTerms are whole-word title terms marking apparel, accessories,
// and other non-footwear listings that collectors occasionally sweep up.
var excludedTerms = []string{
	"shirt", "t-shirt", "tee", "hoodie", "sweatshirt", "jacket", "pants",
	"shorts", "jersey", "sock", "socks", "hat", "cap", "beanie", "backpack",
	"bag", "glove", "gloves", "insole", "insoles", "lace", "laces",
	"cleaner", "deodorizer",
}

// Filter applies the validity rules to sanitized entries. Rejections are
// silent; callers count them for health metrics.
type Filter struct {
	cfg        *pipelinecfg.Config
	exclusions *regexp.Regexp
}

// NewFilter creates a new Filter using the configured price and discount
// bands.
func NewFilter(cfg *pipelinecfg.Config) *Filter {
	if cfg == nil {
		cfg = pipelinecfg.NewConfig()
	}
	return &Filter{
		cfg:        cfg,
		exclusions: buildExclusionPattern(excludedTerms),
	}
}

// buildExclusionPattern compiles the excluded terms into one whole-word
// alternation. "Crew Sock" matches; "Sockliner Pro" does not.
func buildExclusionPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Valid reports whether a sanitized entry satisfies every validity rule.
func (f *Filter) Valid(e *domain.CatalogEntry) bool {
	if e == nil {
		return false
	}
	if strings.TrimSpace(e.URL) == "" || strings.TrimSpace(e.Title) == "" {
		return false
	}
	if e.SalePrice <= 0 || e.Price <= 0 {
		return false
	}
	if e.SalePrice >= e.Price {
		return false
	}
	if e.SalePrice < f.cfg.MinSalePrice || e.SalePrice > f.cfg.MaxSalePrice {
		return false
	}

	discount := (e.Price - e.SalePrice) / e.Price * 100
	if discount < f.cfg.MinDiscountPct || discount > f.cfg.MaxDiscountPct {
		return false
	}

	if f.exclusions.MatchString(e.Title) {
		return false
	}

	return true
}
