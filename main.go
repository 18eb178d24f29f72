package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/cmd"
	"github.com/kbtools/kb/cmd/config"
	"github.com/kbtools/kb/pkg/app"
)

var kb *app.App

func main() {
	rootCmd := &cobra.Command{
		Use:           "kb",
		Short:         "A folder-structured markdown knowledge base",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// Runs once before any subcommand.
		config.InitConfig()
		var err error
		kb, err = config.InitApp()
		return err
	}
	rootCmd.PersistentPostRun = func(c *cobra.Command, args []string) {
		if kb != nil {
			_ = kb.Close()
		}
	}

	rootCmd.AddCommand(cmd.NewFolderCmd(&kb))
	rootCmd.AddCommand(cmd.NewNewCmd(&kb))
	rootCmd.AddCommand(cmd.NewListCmd(&kb))
	rootCmd.AddCommand(cmd.NewTreeCmd(&kb))
	rootCmd.AddCommand(cmd.NewOpenCmd(&kb))
	rootCmd.AddCommand(cmd.NewEditCmd(&kb))
	rootCmd.AddCommand(cmd.NewDeleteCmd(&kb))
	rootCmd.AddCommand(cmd.NewViewCmd(&kb))
	rootCmd.AddCommand(cmd.NewSearchCmd(&kb))
	rootCmd.AddCommand(cmd.NewRecentCmd(&kb))
	rootCmd.AddCommand(cmd.NewStatsCmd(&kb))
	rootCmd.AddCommand(cmd.NewExportCmd(&kb))
	rootCmd.AddCommand(cmd.NewImportCmd(&kb))
	rootCmd.AddCommand(cmd.NewSyncCmd(&kb))
	rootCmd.AddCommand(cmd.NewRunCmd(&kb))
	rootCmd.AddCommand(cmd.NewSettingsCmd(&kb))
	rootCmd.AddCommand(cmd.NewTuiCmd(&kb))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
