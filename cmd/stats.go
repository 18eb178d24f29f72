package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
)

func NewStatsCmd(kb **app.App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			st := a.Store.ComputeStats()
			if jsonOutput {
				return outputJSON(st)
			}

			fmt.Printf("Documents:   %d\n", st.Documents)
			fmt.Printf("Folders:     %d\n", st.Folders)
			fmt.Printf("Code blocks: %d\n", st.CodeBlocks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
