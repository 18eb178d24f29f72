package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
)

func NewNewCmd(kb **app.App) *cobra.Command {
	var (
		category  string
		folder    string
		fromStdin bool
		noOpen    bool
	)

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new document",
		Long: `Create a new document, optionally inside a folder.

Examples:
  kb new "Meeting notes"
  kb new "Scraper design" -c architecture -f Projects
  echo "# Idea" | kb new "Quick idea"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			title := ""
			if len(args) > 0 {
				title = args[0]
			}

			folderID := ""
			if folder != "" {
				f := resolveFolder(a, folder)
				if f == nil {
					return fmt.Errorf("folder not found: %s", folder)
				}
				folderID = f.ID
			}

			// Auto-detect piped content.
			if !cmd.Flags().Changed("stdin") {
				if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}

			doc, err := a.Store.CreateDocument(title, models.Category(category), folderID)
			if err != nil {
				return err
			}

			if fromStdin {
				content, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				if _, err := a.Store.UpdateDocument(doc.ID, doc.Title, string(content), doc.Category); err != nil {
					return err
				}
			}

			// The new document becomes the open one.
			if !noOpen {
				a.Session.Open(doc.ID)
			}

			fmt.Printf("Created: %s\n", a.Session.BreadcrumbFor(doc.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "general", "Document category (general, code, architecture, api, tutorial, notes, python)")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Containing folder by name or id")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read content from stdin (auto-detected when piped)")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Don't make the new document the open one")

	return cmd
}
