package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
)

func NewRecentCmd(kb **app.App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently updated documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			recent := a.Store.RecentDocuments(limit)
			if len(recent) == 0 {
				fmt.Println("No documents yet")
				return nil
			}

			for _, d := range recent {
				preview := strings.Map(func(r rune) rune {
					switch r {
					case '#', '*', '`', '\n':
						return ' '
					}
					return r
				}, d.Content)
				preview = truncateString(preview, 80)
				fmt.Printf("%s %s  (%s, %s)\n", d.Category.Icon(), d.Title,
					d.UpdatedAt.Format("2006-01-02"), d.Category)
				if strings.TrimSpace(preview) != "" {
					fmt.Printf("   %s\n", strings.TrimSpace(preview))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 6, "Number of documents to show")

	return cmd
}
