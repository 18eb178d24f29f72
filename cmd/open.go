package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
)

func NewOpenCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [title-or-id]",
		Short: "Open a document for editing",
		Long: `Make a document the open one. Subsequent edit, delete, view, sync and
run commands act on it. Without an argument, shows what is open.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			if len(args) == 0 {
				fmt.Println(a.Session.Breadcrumb())
				return nil
			}

			doc := resolveDocument(a, args[0])
			if doc == nil {
				// Unknown ids are ignored rather than reported; the
				// controller keeps whatever was open before.
				fmt.Println(a.Session.Breadcrumb())
				return nil
			}

			a.Session.Open(doc.ID)
			fmt.Println(a.Session.Breadcrumb())
			return nil
		},
	}

	return cmd
}
