package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/markdown"
)

func NewViewCmd(kb **app.App) *cobra.Command {
	var (
		raw  bool
		meta bool
	)

	cmd := &cobra.Command{
		Use:   "view [title-or-id]",
		Short: "Render a document",
		Long: `Render a document's markdown as sanitized HTML. Without an argument,
renders the currently open document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			doc := a.Session.Current()
			if len(args) > 0 {
				doc = resolveDocument(a, args[0])
				if doc == nil {
					return fmt.Errorf("document not found: %s", args[0])
				}
			}
			if doc == nil {
				return fmt.Errorf("no document is currently open")
			}

			if meta {
				fmt.Printf("%s\nLast updated: %s · %d min read\n\n",
					a.Session.BreadcrumbFor(doc.ID),
					doc.UpdatedAt.Format("January 2, 2006"),
					doc.ReadMinutes())
			}

			if raw {
				fmt.Println(doc.Content)
				return nil
			}

			html, err := markdown.RenderSafe(doc.Content)
			if err != nil {
				return err
			}
			fmt.Println(html)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown instead of HTML")
	cmd.Flags().BoolVar(&meta, "meta", false, "Print breadcrumb and document metadata first")

	return cmd
}
