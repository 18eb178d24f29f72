package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/tree"
)

func NewTreeCmd(kb **app.App) *cobra.Command {
	var (
		viewMode bool
		plain    bool
		collapse []string
		expand   []string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the folder and document tree",
		Long: `Show the nested folder/document tree.

The default (editable) context persists expand state changes made with
--expand/--collapse. With --view the same toggles apply for this render
only and nothing is written back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			opts := tree.Options{}
			if doc := a.Session.Current(); doc != nil {
				opts.ActiveDocumentID = doc.ID
			}

			if viewMode {
				// Read-only context: toggles are a transient overlay.
				overlay := make(map[string]bool)
				for _, name := range expand {
					if f := resolveFolder(a, name); f != nil {
						overlay[f.ID] = true
					}
				}
				for _, name := range collapse {
					if f := resolveFolder(a, name); f != nil {
						overlay[f.ID] = false
					}
				}
				opts.Overlay = overlay
			} else {
				for _, name := range expand {
					f := resolveFolder(a, name)
					if f == nil {
						return fmt.Errorf("folder not found: %s", name)
					}
					if err := a.Store.SetExpanded(f.ID, true); err != nil {
						return err
					}
				}
				for _, name := range collapse {
					f := resolveFolder(a, name)
					if f == nil {
						return fmt.Errorf("folder not found: %s", name)
					}
					if err := a.Store.SetExpanded(f.ID, false); err != nil {
						return err
					}
				}
			}

			nodes := tree.Build(a.Index, opts)
			renderOpts := tree.RenderOptions{
				Plain: plain || !isatty.IsTerminal(os.Stdout.Fd()),
			}
			if viewMode {
				renderOpts.Placeholder = "No documents to view"
			}

			fmt.Print(tree.Render(nodes, renderOpts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&viewMode, "view", false, "Read-only context: expand/collapse are not persisted")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable styling")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "Expand a folder (repeatable)")
	cmd.Flags().StringArrayVar(&collapse, "collapse", nil, "Collapse a folder (repeatable)")

	return cmd
}
