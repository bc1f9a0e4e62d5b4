// Package scheduler implements the cron-driven pipeline command.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/godeals/cmd/common"
	"github.com/jonesrussell/godeals/internal/logger"
	"github.com/jonesrussell/godeals/internal/pipeline"
)

// runTimeout bounds a single scheduled pipeline run.
const runTimeout = 15 * time.Minute

// Cmd represents the scheduler command.
var Cmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the pipeline on a schedule",
	Long: `Run the aggregation pipeline on the configured cron schedule.
The scheduler runs continuously until interrupted with Ctrl+C.`,
	RunE: runScheduler,
}

// runScheduler executes the scheduler command.
func runScheduler(cmd *cobra.Command, _ []string) error {
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

	schedule := deps.Config.GetPipelineConfig().Schedule
	c := cron.New()
	if _, addErr := c.AddFunc(schedule, func() {
		executeRun(ctx, deps.Logger, p)
	}); addErr != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, addErr)
	}

	deps.Logger.Info("Scheduler started", "schedule", schedule)
	c.Start()

	<-ctx.Done()
	deps.Logger.Info("Shutdown signal received")

	// Let an in-flight run finish before exiting.
	stopCtx := c.Stop()
	<-stopCtx.Done()

	deps.Logger.Info("Scheduler stopped successfully")
	return nil
}

// executeRun performs one scheduled pipeline run. Failures are logged
// rather than stopping the schedule.
func executeRun(ctx context.Context, log logger.Interface, p *pipeline.Pipeline) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	summary, err := p.Run(runCtx)
	if err != nil {
		log.Error("Scheduled run failed", "error", err)
		return
	}

	log.Info("Scheduled run completed",
		"total_deals", summary.TotalDeals,
		"rejected", summary.Rejected,
		"duration_ms", summary.DurationMs)
}
