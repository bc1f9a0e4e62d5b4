// Package run implements the one-shot pipeline command.
package run

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/godeals/cmd/common"
	"github.com/jonesrussell/godeals/internal/domain"
)

// Cmd represents the run command.
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run the aggregation pipeline once",
	Long: `Fetch every enabled source, sanitize and deduplicate the results,
and publish all artifacts to object storage. Exits after one cycle.`,
	RunE: runOnce,
}

// runOnce executes a single pipeline cycle.
func runOnce(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, _, err := common.CreatePipeline(ctx, deps, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	renderSummary(summary)
	return nil
}

// renderSummary prints the run outcome as a per-source table plus totals.
func renderSummary(summary *domain.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Source", "OK", "Deals", "Via", "Duration (ms)", "Error"})
	for i := range summary.Sources {
		src := &summary.Sources[i]
		t.AppendRow(table.Row{
			src.Scraper,
			src.OK,
			src.Count,
			src.Via,
			src.DurationMs,
			src.Error,
		})
	}
	t.Render()

	fmt.Printf("\nRun %s: %d deals published (%d raw, %d rejected, %d duplicates) in %dms\n",
		summary.RunID,
		summary.TotalDeals,
		summary.RawCount,
		summary.Rejected,
		summary.Duplicates,
		summary.DurationMs,
	)
}
