// Package featured selects the deterministic daily featured subset of the
// catalog. Selection is a pure function of (snapshot, UTC date string): the
// same inputs always produce the same entries in the same order, and the
// output changes exactly once per UTC day without any persisted state.
package featured

import (
	"math"
	"sort"

	"github.com/jonesrussell/godeals/internal/domain"
)

const (
	// DefaultCount is the default size cap of the featured set.
	DefaultCount = 12

	// rankPoolSize is how deep the discount/savings rankings reach when
	// sampling the "objectively strong" picks.
	rankPoolSize = 20

	// shuffleSalt decorrelates the display-order shuffle from item
	// selection. Both seeds derive from the same date string; the salt
	// keeps the shuffle from revealing the selection structure.
	shuffleSalt = 7919
)

// selectionSeed derives the item-selection seed from a UTC date string
// ("2026-08-27"): the sum of its character codes.
func selectionSeed(dateUTC string) float64 {
	sum := 0
	for _, c := range dateUTC {
		sum += int(c)
	}
	return float64(sum)
}

// shuffleSeed derives the display-order seed from the same date string,
// salted so it is independent of the selection seed.
func shuffleSeed(dateUTC string) float64 {
	return selectionSeed(dateUTC) * shuffleSalt
}

// g is the seeded pseudo-random function: the fractional part of
// sin(seed+i) scaled by 10000. Identical inputs always yield identical
// output, which is what makes the daily set reproducible.
func g(seed float64, i int) float64 {
	v := math.Sin(seed+float64(i)) * 10000
	return v - math.Floor(v)
}

// Select picks at most count entries for the given UTC date string.
// count values below 3 fall back to DefaultCount.
func Select(entries []domain.CatalogEntry, dateUTC string, count int) []domain.CatalogEntry {
	if count < 3 {
		count = DefaultCount
	}
	if len(entries) == 0 {
		return nil
	}

	seed := selectionSeed(dateUTC)

	pool := qualityPool(entries, count)
	if len(pool) <= count {
		// Small pool: sample everything without replacement and shuffle.
		picks := sample(pool, len(pool), seed, 0)
		seededShuffle(picks, shuffleSeed(dateUTC))
		return picks
	}

	perSet := count / 3

	// Set A: strongest discounts.
	byDiscount := rankBy(pool, func(a, b *domain.CatalogEntry) bool {
		return a.DiscountPercent() > b.DiscountPercent()
	})
	setA := sample(head(byDiscount, rankPoolSize), perSet, seed, 0)
	pool = withoutURLs(pool, setA)

	// Set B: largest absolute savings among what remains.
	bySavings := rankBy(pool, func(a, b *domain.CatalogEntry) bool {
		return a.Savings() > b.Savings()
	})
	setB := sample(head(bySavings, rankPoolSize), perSet, seed, 100)
	pool = withoutURLs(pool, setB)

	// Set C: discovery picks from the remainder.
	setC := sample(pool, count-2*perSet, seed, 200)

	picks := make([]domain.CatalogEntry, 0, count)
	picks = append(picks, setA...)
	picks = append(picks, setB...)
	picks = append(picks, setC...)

	seededShuffle(picks, shuffleSeed(dateUTC))
	return picks
}

// qualityPool returns entries with a usable image and a genuine discount,
// falling back to all entries with a usable image when that yields fewer
// than count.
func qualityPool(entries []domain.CatalogEntry, count int) []domain.CatalogEntry {
	quality := make([]domain.CatalogEntry, 0, len(entries))
	withImage := make([]domain.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if !e.HasImage() {
			continue
		}
		withImage = append(withImage, e)
		if e.DiscountPercent() > 0 {
			quality = append(quality, e)
		}
	}
	if len(quality) >= count {
		return quality
	}
	return withImage
}

// rankBy returns a stably sorted copy, preserving catalog order on ties.
func rankBy(entries []domain.CatalogEntry, less func(a, b *domain.CatalogEntry) bool) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

// head returns at most n leading entries.
func head(entries []domain.CatalogEntry, n int) []domain.CatalogEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// sample draws n entries without replacement using the seeded generator.
// Chosen items are removed from a working copy, so no entry can be drawn
// twice. offset separates independent draws from the same seed.
func sample(entries []domain.CatalogEntry, n int, seed float64, offset int) []domain.CatalogEntry {
	working := make([]domain.CatalogEntry, len(entries))
	copy(working, entries)

	if n > len(working) {
		n = len(working)
	}

	out := make([]domain.CatalogEntry, 0, n)
	for i := 0; i < n; i++ {
		idx := int(g(seed, offset+i) * float64(len(working)))
		if idx >= len(working) {
			idx = len(working) - 1
		}
		out = append(out, working[idx])
		working = append(working[:idx], working[idx+1:]...)
	}
	return out
}

// withoutURLs removes entries whose URL appears in picked.
func withoutURLs(entries, picked []domain.CatalogEntry) []domain.CatalogEntry {
	taken := make(map[string]struct{}, len(picked))
	for _, e := range picked {
		taken[e.URL] = struct{}{}
	}
	out := make([]domain.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := taken[e.URL]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// seededShuffle is a Fisher-Yates shuffle driven by the seeded generator.
func seededShuffle(entries []domain.CatalogEntry, seed float64) {
	for i := len(entries) - 1; i > 0; i-- {
		j := int(g(seed, i) * float64(i+1))
		if j > i {
			j = i
		}
		entries[i], entries[j] = entries[j], entries[i]
	}
}
