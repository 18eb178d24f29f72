package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
)

func NewImportCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON backup",
		Long: `Import folders and documents from a JSON backup file.
Imported entries are added alongside existing ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			folders, documents, err := a.Store.ImportFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}
			fmt.Printf("Imported %d folders and %d documents\n", folders, documents)
			return nil
		},
	}

	return cmd
}
