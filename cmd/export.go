package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
)

func NewExportCmd(kb **app.App) *cobra.Command {
	var (
		output string
		files  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the knowledge base",
		Long: `Export all folders and documents as a single JSON backup,
or as a directory of Markdown files with --files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			if files != "" {
				n, err := a.Store.ExportFiles(files)
				if err != nil {
					return fmt.Errorf("failed to export files: %w", err)
				}
				fmt.Printf("Exported %d documents to %s\n", n, files)
				return nil
			}

			if output == "" {
				output = fmt.Sprintf("kb-export-%s.json", time.Now().Format("2006-01-02"))
			}
			if err := a.Store.ExportTo(output); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			env := a.Store.Export()
			fmt.Printf("Exported %d folders and %d documents to %s\n",
				len(env.Folders), len(env.Documents), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default kb-export-<date>.json)")
	cmd.Flags().StringVar(&files, "files", "", "Export as Markdown files into the given directory")

	return cmd
}
