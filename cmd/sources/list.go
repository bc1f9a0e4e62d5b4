package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/godeals/cmd/common"
	internalsources "github.com/jonesrussell/godeals/internal/sources"
)

// NewListCommand creates a new list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured sources",
		Long:  `List all collector sources configured in the sources file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			loader := internalsources.NewLoader(deps.Config.GetSourcesFile())
			configs, err := loader.LoadSources()
			if err != nil {
				return fmt.Errorf("failed to load sources: %w", err)
			}

			renderTable(configs)
			return nil
		},
	}
}

// renderTable formats and displays the sources in a table format.
func renderTable(configs []internalsources.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "Store", "Mode", "Shape", "Timeout", "Enabled"})
	for i := range configs {
		cfg := &configs[i]
		shape := cfg.Shape
		if shape == "" {
			shape = "auto"
		}
		t.AppendRow(table.Row{
			cfg.Name,
			cfg.Store,
			cfg.Mode,
			shape,
			cfg.Timeout,
			cfg.IsEnabled(),
		})
	}
	t.Render()
}
