// Package history maintains the rolling per-collector outcome ledger: a
// bounded, per-day series of source run summaries. The ledger is the only
// state carried across pipeline runs.
package history

import (
	"sort"
	"time"

	"github.com/jonesrussell/godeals/internal/domain"
)

// Append merges today's source runs into the prior ledger. Any existing
// entry for dayUTC is replaced (recompute never duplicates a day), days
// are kept ascending by date, and only the most recent maxDays entries
// survive. A nil prior ledger starts an empty one.
func Append(prior *domain.HistoryLedger, runs []domain.SourceRun, dayUTC string, maxDays int, now time.Time) *domain.HistoryLedger {
	if maxDays <= 0 {
		maxDays = domain.HistoryMaxDays
	}

	ledger := &domain.HistoryLedger{
		Version:     domain.HistoryVersion,
		LastUpdated: now.UTC().Format(time.RFC3339),
	}

	if prior != nil {
		for _, day := range prior.Days {
			if day.DayUTC == dayUTC {
				continue
			}
			ledger.Days = append(ledger.Days, day)
		}
	}

	ledger.Days = append(ledger.Days, domain.HistoryDay{
		DayUTC:      dayUTC,
		GeneratedAt: ledger.LastUpdated,
		Scrapers:    expandRuns(runs),
	})

	sort.Slice(ledger.Days, func(i, j int) bool {
		return ledger.Days[i].DayUTC < ledger.Days[j].DayUTC
	})

	if len(ledger.Days) > maxDays {
		ledger.Days = ledger.Days[len(ledger.Days)-maxDays:]
	}

	return ledger
}

// expandRuns converts source runs into ledger lines. A run carrying a
// per-sub-collector breakdown expands into individual lines; a run with
// timing metadata becomes one aggregate line; a run with nothing but a
// count degrades to a count-only line.
func expandRuns(runs []domain.SourceRun) []domain.SourceRun {
	out := make([]domain.SourceRun, 0, len(runs))
	for _, run := range runs {
		if len(run.Breakdown) > 0 {
			for _, sub := range run.Breakdown {
				sub.Breakdown = nil
				out = append(out, sub)
			}
			continue
		}

		if run.Timestamp != "" || run.DurationMs > 0 {
			run.Breakdown = nil
			out = append(out, run)
			continue
		}

		out = append(out, domain.SourceRun{
			Scraper: run.Scraper,
			OK:      run.OK,
			Count:   run.Count,
		})
	}
	return out
}
