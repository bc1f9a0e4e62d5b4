// Package dedupe merges overlapping records from independent sources into
// one unique catalog.
package dedupe

import (
	"strings"

	"github.com/jonesrussell/godeals/internal/domain"
)

// Dedupe removes duplicate entries sharing the same (store, trimmed url)
// key. The key is an exact string match: no case folding and no
// query-string normalization, so URL variants survive as distinct entries.
// Entries with an empty URL are exempt (absence of a URL is not an
// identity) and are never merged against each other. First occurrence
// wins; order is otherwise preserved.
func Dedupe(entries []domain.CatalogEntry) []domain.CatalogEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]domain.CatalogEntry, 0, len(entries))

	for _, e := range entries {
		trimmedURL := strings.TrimSpace(e.URL)
		if trimmedURL == "" {
			out = append(out, e)
			continue
		}

		key := e.Store + "|" + trimmedURL
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}

	return out
}
