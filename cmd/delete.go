package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
)

func NewDeleteCmd(kb **app.App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [title-or-id]",
		Short:   "Delete a document",
		Aliases: []string{"rm"},
		Long: `Delete a document after confirmation. Without an argument, deletes the
currently open document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			if len(args) > 0 {
				doc := resolveDocument(a, args[0])
				if doc == nil {
					return fmt.Errorf("document not found: %s", args[0])
				}
				a.Session.Open(doc.ID)
			}

			doc := a.Session.Current()
			if doc == nil {
				return fmt.Errorf("no document is currently open")
			}

			confirmed := yes
			if !confirmed {
				fmt.Printf("Delete %q? [y/N] ", doc.Title)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				confirmed = strings.EqualFold(strings.TrimSpace(answer), "y")
			}

			if !confirmed {
				fmt.Println("Aborted")
				return nil
			}

			if err := a.Session.Delete(true); err != nil {
				return err
			}
			fmt.Printf("Deleted %q\n", doc.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
