package history_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/history"
)

var testNow = time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)

func run(name string, count int) domain.SourceRun {
	return domain.SourceRun{
		Scraper:    name,
		OK:         true,
		Count:      count,
		DurationMs: 1200,
		Timestamp:  "2026-08-27T06:00:00Z",
	}
}

func TestAppendStartsFreshLedger(t *testing.T) {
	ledger := history.Append(nil, []domain.SourceRun{run("footlocker", 42)}, "2026-08-27", 30, testNow)

	require.NotNil(t, ledger)
	assert.Equal(t, domain.HistoryVersion, ledger.Version)
	require.Len(t, ledger.Days, 1)
	assert.Equal(t, "2026-08-27", ledger.Days[0].DayUTC)
	require.Len(t, ledger.Days[0].Scrapers, 1)
	assert.Equal(t, 42, ledger.Days[0].Scrapers[0].Count)
}

func TestAppendReplacesSameDay(t *testing.T) {
	first := history.Append(nil, []domain.SourceRun{run("footlocker", 10)}, "2026-08-27", 30, testNow)
	second := history.Append(first, []domain.SourceRun{run("footlocker", 25)}, "2026-08-27", 30, testNow)

	require.Len(t, second.Days, 1, "recompute on the same day must not duplicate it")
	assert.Equal(t, 25, second.Days[0].Scrapers[0].Count)
}

func TestAppendKeepsDaysAscending(t *testing.T) {
	ledger := history.Append(nil, []domain.SourceRun{run("a", 1)}, "2026-08-25", 30, testNow)
	ledger = history.Append(ledger, []domain.SourceRun{run("a", 2)}, "2026-08-27", 30, testNow)
	ledger = history.Append(ledger, []domain.SourceRun{run("a", 3)}, "2026-08-26", 30, testNow)

	require.Len(t, ledger.Days, 3)
	assert.Equal(t, "2026-08-25", ledger.Days[0].DayUTC)
	assert.Equal(t, "2026-08-26", ledger.Days[1].DayUTC)
	assert.Equal(t, "2026-08-27", ledger.Days[2].DayUTC)
}

func TestAppendBoundsRetention(t *testing.T) {
	var ledger *domain.HistoryLedger
	for i := 1; i <= 35; i++ {
		day := fmt.Sprintf("2026-07-%02d", i)
		if i > 31 {
			day = fmt.Sprintf("2026-08-%02d", i-31)
		}
		ledger = history.Append(ledger, []domain.SourceRun{run("a", i)}, day, 30, testNow)
	}

	require.Len(t, ledger.Days, 30, "ledger keeps only the most recent days")
	assert.Equal(t, "2026-07-06", ledger.Days[0].DayUTC, "oldest days are evicted")
	assert.Equal(t, "2026-08-04", ledger.Days[len(ledger.Days)-1].DayUTC)
}

func TestAppendExpandsBreakdown(t *testing.T) {
	parent := domain.SourceRun{
		Scraper: "aggregate",
		OK:      true,
		Count:   30,
		Breakdown: []domain.SourceRun{
			{Scraper: "sub-a", OK: true, Count: 12},
			{Scraper: "sub-b", OK: false, Count: 0, Error: "timeout"},
		},
	}

	ledger := history.Append(nil, []domain.SourceRun{parent}, "2026-08-27", 30, testNow)

	require.Len(t, ledger.Days, 1)
	scrapers := ledger.Days[0].Scrapers
	require.Len(t, scrapers, 2, "a run with a breakdown expands into its sub-collectors")
	assert.Equal(t, "sub-a", scrapers[0].Scraper)
	assert.Equal(t, "sub-b", scrapers[1].Scraper)
	assert.Equal(t, "timeout", scrapers[1].Error)
}

func TestAppendCountOnlyRun(t *testing.T) {
	bare := domain.SourceRun{Scraper: "legacy", OK: true, Count: 7}

	ledger := history.Append(nil, []domain.SourceRun{bare}, "2026-08-27", 30, testNow)

	scrapers := ledger.Days[0].Scrapers
	require.Len(t, scrapers, 1)
	assert.Equal(t, 7, scrapers[0].Count)
	assert.Zero(t, scrapers[0].DurationMs)
	assert.Empty(t, scrapers[0].Timestamp)
}

func TestAppendDefaultRetention(t *testing.T) {
	ledger := history.Append(nil, []domain.SourceRun{run("a", 1)}, "2026-08-27", 0, testNow)
	require.NotNil(t, ledger)
	assert.Len(t, ledger.Days, 1)
}
