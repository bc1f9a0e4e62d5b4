// Package sanitize cleans untrusted candidate records: stripping leaked
// markup and style rules from free text, resolving listing URLs, and
// coercing currency strings to numbers.
package sanitize

import (
	"strings"
	"unicode"
)

// FallbackBaseURL is the neutral placeholder base used for stores without a
// registered base URL. Relative listings from unknown stores resolve here so
// they remain valid absolute URLs without pretending to know the retailer.
const FallbackBaseURL = "https://deals.example.com"

// Registry maps normalized store names to their base URLs. It is populated
// at startup and consulted with a containment match, since collectors are
// inconsistent about store naming ("Foot Locker" vs "footlocker.com").
type Registry struct {
	bases    map[string]string
	fallback string
}

// NewRegistry creates a registry with the given store base URLs plus an
// explicit fallback entry.
func NewRegistry(bases map[string]string) *Registry {
	r := &Registry{
		bases:    make(map[string]string, len(bases)),
		fallback: FallbackBaseURL,
	}
	for store, base := range bases {
		r.bases[normalizeStore(store)] = strings.TrimRight(base, "/")
	}
	return r
}

// DefaultRegistry returns the registry for the retailers the collectors
// currently cover.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]string{
		"Foot Locker":     "https://www.footlocker.com",
		"Finish Line":     "https://www.finishline.com",
		"Nike":            "https://www.nike.com",
		"Adidas":          "https://www.adidas.com",
		"New Balance":     "https://www.newbalance.com",
		"Dicks":           "https://www.dickssportinggoods.com",
		"Shoe Carnival":   "https://www.shoecarnival.com",
		"Famous Footwear": "https://www.famousfootwear.com",
	})
}

// BaseFor returns the base URL for a store name, falling back to the
// neutral placeholder when the store is unknown.
func (r *Registry) BaseFor(store string) string {
	norm := normalizeStore(store)
	if norm == "" {
		return r.fallback
	}
	if base, ok := r.bases[norm]; ok {
		return base
	}
	// Containment match: collector store names often carry extra words
	// ("Nike Outlet", "footlocker.ca").
	for key, base := range r.bases {
		if strings.Contains(norm, key) || strings.Contains(key, norm) {
			return base
		}
	}
	return r.fallback
}

// normalizeStore lowercases a store name and strips everything that is not
// a letter or digit.
func normalizeStore(store string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(store) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
