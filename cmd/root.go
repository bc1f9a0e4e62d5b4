// Package cmd implements the command-line interface for the deal
// aggregation service. It provides the root command and subcommands for
// running, serving, and scheduling the pipeline.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/godeals/cmd/featured"
	"github.com/jonesrussell/godeals/cmd/httpd"
	"github.com/jonesrussell/godeals/cmd/run"
	cmdscheduler "github.com/jonesrussell/godeals/cmd/scheduler"
	cmdsources "github.com/jonesrussell/godeals/cmd/sources"
	"github.com/jonesrussell/godeals/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands
	debug bool

	// rootCmd represents the root command for the godeals CLI.
	rootCmd = &cobra.Command{
		Use:   "godeals",
		Short: "A deal aggregation and normalization pipeline",
		Long: `Aggregates product deal listings from multiple collector sources,
sanitizes and deduplicates them, and publishes catalog, stats, featured,
and history artifacts to object storage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Parse flags early so the config path is known before Viper loads
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("godeals version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(httpd.Cmd)
	rootCmd.AddCommand(cmdscheduler.Cmd)
	rootCmd.AddCommand(cmdsources.Command())
	rootCmd.AddCommand(featured.Cmd)
}

// initConfig initializes Viper and applies the debug flag.
func initConfig() error {
	if err := config.InitializeViper(cfgFile); err != nil {
		return err
	}

	if err := viper.BindPFlag("logging.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if debug {
		viper.Set("logging.level", "debug")
	}

	return nil
}
