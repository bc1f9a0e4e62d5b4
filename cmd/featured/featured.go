// Package featured implements the command-line interface for viewing the
// published daily featured set.
package featured

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/godeals/cmd/common"
	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/storage"
)

// Cmd represents the featured command.
var Cmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the published featured deals",
	Long:  `Read the daily featured set from object storage and display it.`,
	RunE:  showFeatured,
}

// showFeatured reads and renders the published featured artifact.
func showFeatured(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := common.CreateStorage(ctx, deps)
	if err != nil {
		return err
	}

	data, err := store.Get(ctx, domain.KeyFeatured)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Println("No featured set published yet. Run the pipeline first.")
			return nil
		}
		return fmt.Errorf("failed to read featured set: %w", err)
	}

	var set domain.FeaturedSet
	if unmarshalErr := json.Unmarshal(data, &set); unmarshalErr != nil {
		return fmt.Errorf("failed to decode featured set: %w", unmarshalErr)
	}

	renderFeatured(&set)
	return nil
}

// renderFeatured displays the featured deals in a table format.
func renderFeatured(set *domain.FeaturedSet) {
	fmt.Printf("Featured deals for %s (%d total)\n\n", set.DaySeedUTC, set.Total)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Title", "Brand", "Store", "Sale", "Was", "Discount"})
	for i := range set.Deals {
		deal := &set.Deals[i]
		t.AppendRow(table.Row{
			deal.Title,
			deal.Brand,
			deal.Store,
			fmt.Sprintf("$%.2f", deal.SalePrice),
			fmt.Sprintf("$%.2f", deal.Price),
			fmt.Sprintf("%.0f%%", deal.DiscountPercent()),
		})
	}
	t.Render()
}
