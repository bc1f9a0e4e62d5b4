// Package sources implements the command-line interface for inspecting
// configured deal sources.
package sources

import (
	"github.com/spf13/cobra"
)

// Command returns the sources command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage deal sources",
		Long:  `Inspect the collector sources configured for the pipeline.`,
	}

	cmd.AddCommand(NewListCommand())

	return cmd
}
