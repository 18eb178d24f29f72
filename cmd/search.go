package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
)

func NewSearchCmd(kb **app.App) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search document titles and content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			// The whole corpus lives in memory; a linear scan is cheaper
			// than keeping a text index consistent at these sizes.
			query := strings.ToLower(args[0])
			var matches []*models.Document
			for _, d := range a.Store.Documents() {
				if strings.Contains(strings.ToLower(d.Title), query) ||
					strings.Contains(strings.ToLower(d.Content), query) {
					matches = append(matches, d)
				}
			}

			if len(matches) == 0 {
				if listJSON {
					fmt.Println("[]")
				} else {
					fmt.Printf("No documents matching %q\n", args[0])
				}
				return nil
			}

			if listJSON {
				return outputJSON(matches)
			}
			printDocumentsTable(a, matches)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}
